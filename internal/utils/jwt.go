package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/albaz/internal/models"
)

type sessionClaims struct {
	User models.User `json:"user"`
	jwt.RegisteredClaims
}

// GenerateSessionToken creates a signed compact token carrying the remembered
// session projection. The token obfuscates the snapshot; it is not encryption.
func GenerateSessionToken(secret string, user models.User, ttl time.Duration) (string, error) {
	claims := &sessionClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates the token and returns the embedded projection.
func ParseSessionToken(secret, tokenString string) (models.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return models.User{}, err
	}

	if claims, ok := token.Claims.(*sessionClaims); ok && token.Valid {
		return claims.User, nil
	}

	return models.User{}, jwt.ErrTokenInvalidClaims
}
