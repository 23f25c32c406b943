package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("job-rec", "access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestAccessTokenRoundTrip(t *testing.T) {
	now := time.Now()
	s := newTestService(now)
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id)
	require.NoError(t, err)

	c, err := s.ValidateAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
	assert.Equal(t, "job-rec", c.Issuer)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	s := newTestService(time.Now())
	id := uuid.New()

	refresh, err := s.GenerateRefreshToken(id)
	require.NoError(t, err)
	_, err = s.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	c, err := s.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, c.TokenType)
}

func TestExpiredToken(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	tok, err := newTestService(issued).GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTamperedToken(t *testing.T) {
	s := newTestService(time.Now())
	tok, err := s.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	other := NewHMACService("job-rec", "another", "refresh-secret", time.Minute, time.Hour)
	_, err = other.ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = s.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerate_RequiresSecret(t *testing.T) {
	s := NewHMACService("job-rec", "", "", time.Minute, time.Hour)
	_, err := s.GenerateAccessToken(uuid.New())
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestForeignIssuerRejected(t *testing.T) {
	now := time.Now()
	foreign := NewHMACService("someone-else", "access-secret", "refresh-secret", time.Minute, time.Hour)
	foreign.now = func() time.Time { return now }

	tok, err := foreign.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = newTestService(now).ValidateAccessToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestSmallClockSkewTolerated(t *testing.T) {
	issued := time.Now()
	tok, err := newTestService(issued).GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = newTestService(issued.Add(-2 * time.Second)).ValidateAccessToken(tok)
	assert.NoError(t, err)
}
