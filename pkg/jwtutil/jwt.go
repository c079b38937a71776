package jwtutil

import (
	"github.com/golang-jwt/jwt/v5"

	"buildsite-service/pkg/config"
)

var signingKey = []byte("buildsiteservicesecretkey")

// Initialize sets the signing key from configuration.
func Initialize(cfg *config.JWTConfig) {
	if cfg != nil && cfg.SigningKey != "" {
		signingKey = []byte(cfg.SigningKey)
	}
}

// UserClaims represents the JWT claims identifying a user
type UserClaims struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return signingKey, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
