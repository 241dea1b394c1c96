package errs

// ErrorHandler is how pipeline and store code reports failures without
// knowing whether it runs under a request or a test.
//
// PublicError carries a message safe to show to the caller along with the
// status code it should produce. PrivateError is for internal detail that
// only belongs in the logs.
type ErrorHandler interface {
	PublicError(statusCode int, err error)
	PrivateError(err error)
}
