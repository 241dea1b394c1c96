package middlewares

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/videoteca/backend/internal/auth"
	"github.com/videoteca/backend/internal/errs"
	"github.com/videoteca/backend/internal/stores"
)

var unauthorizedError = errors.New("You must be logged in to do this.")

// AuthMiddleware parses an optional bearer token and records the subject on
// the request context. Invalid tokens are logged and treated as anonymous.
func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if tokenStr, found := strings.CutPrefix(header, "Bearer "); found {
			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, auth.JwtKeyFunc)

			if err == nil && token.Valid {
				if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time) {
					slog.Warn("Token expired", "username", claims.Subject)
				} else {
					stores.SetUsername(ctx, claims.Subject)
				}
			} else {
				slog.Warn("Failed to validate token", "error", err)
			}
		}

		ctx.Next()
	}
}

func MustAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		handler := errs.NewGinErrorHandler(ctx, "Unauthorized")
		if !stores.IsLoggedIn(ctx) {
			handler.PublicError(http.StatusUnauthorized, unauthorizedError)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
