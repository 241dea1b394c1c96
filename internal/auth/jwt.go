package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var jwtSecret string

func InitJWT(secret string) error {
	if secret == "" {
		return fmt.Errorf("JWT secret not specified")
	}

	jwtSecret = secret
	return nil
}

func JwtKeyFunc(_ *jwt.Token) (interface{}, error) {
	return []byte(jwtSecret), nil
}

func Authorize(username string, timeout time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "videoteca-api",
		Subject:   username,
		Audience:  []string{"videoteca"},
		ExpiresAt: &jwt.NumericDate{Time: now.Add(timeout)},
		IssuedAt:  &jwt.NumericDate{Time: now},
	})
	return token.SignedString([]byte(jwtSecret))
}
