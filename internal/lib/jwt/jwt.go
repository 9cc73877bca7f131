package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// NewToken signs an HS256 operator token for subject.
func NewToken(subject string, duration time.Duration, secret string) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(duration).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
