// Package auth implements the credential primitives: signed expiring tokens
// and password hashing.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ysolovyov/knorozov/internal/common"
)

// IssueToken produces a signed HS256 token whose payload carries the subject
// and an absolute expiry of now + validityDuration.
func IssueToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// DecodeToken verifies the token's signature and structure and returns its
// subject and expiry. It deliberately does NOT reject expired tokens: the
// expiry instant is returned for the caller to compare, so that an expired
// token and a forged token stay distinguishable.
func DecodeToken(tokenString string, secretKey []byte) (string, time.Time, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return "", time.Time{}, common.ErrInvalidToken
	}

	if !token.Valid {
		return "", time.Time{}, common.ErrInvalidToken
	}

	if claims.ExpiresAt == nil {
		return "", time.Time{}, common.ErrInvalidToken
	}

	return claims.Subject, claims.ExpiresAt.Time, nil
}
