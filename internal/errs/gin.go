package errs

import (
	"github.com/gin-gonic/gin"

	"github.com/videoteca/backend/internal/stores"
)

// GinErrorHandler records errors on the gin context. The error middleware
// renders whatever accumulated here as the JSON response body.
type GinErrorHandler struct {
	context *gin.Context
}

func NewGinErrorHandler(c *gin.Context, title string) *GinErrorHandler {
	stores.SetErrorTitle(c, title)
	return &GinErrorHandler{context: c}
}

func (e *GinErrorHandler) PublicError(statusCode int, err error) {
	e.context.Status(statusCode)
	e.context.Error(err).SetType(gin.ErrorTypePublic)
}

func (e *GinErrorHandler) PrivateError(err error) {
	e.context.Error(err).SetType(gin.ErrorTypePrivate)
}
