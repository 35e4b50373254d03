package crypto

import (
	"errors"
	"time"

	"quizapi/domain"

	"github.com/golang-jwt/jwt/v5"
)

type JWTManager struct {
	key      []byte
	tokenAge time.Duration
}

func NewJWTManager(key string, tokenAge time.Duration) *JWTManager {
	return &JWTManager{key: []byte(key), tokenAge: tokenAge}
}

func (jm *JWTManager) Generate(id string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  id,
		"exp": now.Add(jm.tokenAge).Unix(),
	})

	return token.SignedString(jm.key)
}

// Verify returns the id embedded in the token if the token is valid.
func (jm *JWTManager) Verify(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		// Validate the signing method is what we expect (HMAC)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidSigningAlg
		}
		return jm.key, nil
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidSigningAlg):
			return "", domain.ErrInvalidSigningAlg
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrInvalidTokenSignature
		default:
			return "", domain.ErrCorruptedToken
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrCorruptedToken
	}

	id, ok := claims["id"].(string)
	if !ok {
		return "", domain.ErrCorruptedToken
	}

	return id, nil
}
