// Package auth validates access tokens issued by the identity provider.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidator checks HS256 access tokens signed with the secret shared
// with the identity provider. The user id is the "sub" claim.
type TokenValidator struct {
	secret []byte
}

// NewTokenValidator creates a new token validator
func NewTokenValidator(secret string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret)}
}

// ValidateAccessToken validates an access token and returns the user id
func (v *TokenValidator) ValidateAccessToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}

	// Providers that issue refresh tokens with the same secret mark the type
	if tokenType, ok := claims["type"]; ok && tokenType != "access" {
		return "", fmt.Errorf("token is not an access token")
	}

	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return "", fmt.Errorf("subject not found in token")
	}

	return userID, nil
}
