package services

import (
	"time"

	"github.com/godiecl/fivet-grpc/internal/common"
	"github.com/godiecl/fivet-grpc/internal/server/auth"
)

// TokenService mints and validates signed access tokens.
type TokenService struct {
	secret   []byte
	validity time.Duration
}

func NewTokenService(secretKey string, validity time.Duration) *TokenService {
	return &TokenService{secret: []byte(secretKey), validity: validity}
}

// Issue returns an access token for the persona with the given id.
func (s *TokenService) Issue(personaID int64) (string, error) {
	tok, err := auth.GenerateToken(personaID, s.secret, s.validity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return tok, nil
}

// PersonaID validates token and returns the persona id it was issued for.
func (s *TokenService) PersonaID(token string) (int64, error) {
	return auth.GetPersonaIDFromToken(token, s.secret)
}
