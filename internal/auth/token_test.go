package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestTokenValidator_ValidateAccessToken(t *testing.T) {
	validator := NewTokenValidator(testSecret)
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name          string
		token         func(t *testing.T) string
		expectedID    string
		expectedError string
	}{
		{
			name: "valid access token",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-42", "exp": exp, "type": "access"})
			},
			expectedID: "user-42",
		},
		{
			name: "token without type",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-7", "exp": exp})
			},
			expectedID: "user-7",
		},
		{
			name: "refresh token",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-42", "exp": exp, "type": "refresh"})
			},
			expectedError: "not an access token",
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-42", "exp": time.Now().Add(-time.Minute).Unix()})
			},
			expectedError: "failed to parse token",
		},
		{
			name: "no expiry",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "user-42"})
			},
			expectedError: "failed to parse token",
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "user-42", "exp": exp})
			},
			expectedError: "failed to parse token",
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"exp": exp})
			},
			expectedError: "subject not found",
		},
		{
			name: "unsigned",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "user-42", "exp": exp})
			},
			expectedError: "failed to parse token",
		},
		{
			name:          "garbage",
			token:         func(t *testing.T) string { return "not.a.token" },
			expectedError: "failed to parse token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := validator.ValidateAccessToken(tt.token(t))

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Empty(t, userID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedID, userID)
		})
	}
}
