package jwtutil

import (
	"car-service/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("secret-key")

// UserClaims represents the JWT claims for user authentication
type UserClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Initialize sets the process-wide signing key from configuration
func Initialize(cfg *config.JWTConfig) {
	secret = []byte(cfg.SigningKey)
}

// GenerateToken creates a JWT token for the given username. No expiry
// is set: the token stays valid until the signing key changes.
func GenerateToken(username string) (string, error) {
	claims := UserClaims{
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates and parses the JWT token
func ValidateToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
