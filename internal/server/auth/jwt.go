// Package auth holds the credential primitives: password hashers and the
// signed access tokens handed out after a successful login.
package auth

import (
	"errors"
	"time"

	"github.com/godiecl/fivet-grpc/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "fivet"

// Claims are the registered JWT claims plus the authenticated persona id.
type Claims struct {
	jwt.RegisteredClaims
	PersonaID int64 `json:"pid"`
}

func GenerateToken(personaID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		PersonaID: personaID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GetPersonaIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.PersonaID == 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.PersonaID, nil
}
