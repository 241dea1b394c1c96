package errs

import "github.com/gin-gonic/gin"

type CaptureErrorHandler struct {
	StatusCode int
	Errors     []gin.Error
}

func NewCapturingErrorHandler() *CaptureErrorHandler {
	return &CaptureErrorHandler{}
}

func (e *CaptureErrorHandler) PublicError(statusCode int, err error) {
	e.StatusCode = statusCode
	e.Errors = append(e.Errors, gin.Error{Err: err, Type: gin.ErrorTypePublic})
}

func (e *CaptureErrorHandler) PrivateError(err error) {
	e.Errors = append(e.Errors, gin.Error{Err: err, Type: gin.ErrorTypePrivate})
}
