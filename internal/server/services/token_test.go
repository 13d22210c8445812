package services

import (
	"testing"
	"time"

	"github.com/godiecl/fivet-grpc/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndResolve(t *testing.T) {
	s := NewTokenService("k", time.Hour)

	tok, err := s.Issue(7)
	require.NoError(t, err)

	id, err := s.PersonaID(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = NewTokenService("other", time.Hour).PersonaID(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
