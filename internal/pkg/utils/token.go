package utils

import (
	"fmt"
	"github.com/golang-jwt/jwt"
	"github.com/joonho-lee-free/tkshcool/internal/pkg/constants"
	"time"
)

type AuthTokenWrapper struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// GenerateAuthToken signs w with HS256. A zero ExpiresAt is filled from ttl.
func GenerateAuthToken(w *AuthTokenWrapper, key []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	if w.IssuedAt == 0 {
		w.IssuedAt = now.Unix()
	}
	if w.ExpiresAt == 0 && ttl > 0 {
		w.ExpiresAt = now.Add(ttl).Unix()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, w).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("utils.GenerateAuthToken: %w", err)
	}
	return token, nil
}

func ParseAuthToken(token string, key []byte) (*AuthTokenWrapper, error) {
	claims := new(AuthTokenWrapper)
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("utils.ParseAuthToken: %w: %s", constants.ErrInvalidToken, err.Error())
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("utils.ParseAuthToken: %w", constants.ErrInvalidToken)
	}
	return claims, nil
}
