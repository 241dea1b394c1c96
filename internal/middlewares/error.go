package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videoteca/backend/internal/stores"
)

// ErrorMiddleware renders accumulated gin errors as the JSON response body.
// Only public errors reach the caller; everything is logged.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		title := stores.GetErrorTitle(c)
		slog.Warn("Error handling request", "title", title, "errors", c.Errors)

		var messages []string
		for _, err := range c.Errors {
			if err.Type == gin.ErrorTypePublic {
				messages = append(messages, err.Error())
			}
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		if len(messages) == 0 {
			messages = append(messages, "Internal server error")
		}

		if !c.Writer.Written() {
			c.JSON(status, gin.H{"error": title, "messages": messages})
		}
	}
}
