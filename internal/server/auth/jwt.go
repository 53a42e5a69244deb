// Package auth verifies identity tokens issued by the external identity
// provider. The server does not issue tokens itself; it trusts any HS256
// token signed with the shared secret.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/consentchain/consentchain/internal/common"
)

// Claims carries the identity asserted by the provider: the user's email
// and display name, on top of the standard registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GenerateToken mints an HS256 token the way the identity provider does.
// It exists for local development and tests.
func GenerateToken(email string, name string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
		Name:  name,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken parses and validates tokenString and returns its claims.
// A token without an email claim is rejected even if the signature checks out.
func VerifyToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Email == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
