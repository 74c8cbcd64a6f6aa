package crypto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestIssuePairAndValidate(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.IssuePair(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	access, err := svc.Validate(pair.Access, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), access.UserID)
	assert.Equal(t, "admin", access.Role)
	assert.Equal(t, TokenTypeAccess, access.TokenType)

	refresh, err := svc.Validate(pair.Refresh, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, int64(42), refresh.UserID)
	assert.Equal(t, TokenTypeRefresh, refresh.TokenType)
}

func TestValidateRejectsTypeConfusion(t *testing.T) {
	svc := newTestTokenService()

	pair, err := svc.IssuePair(7, "user")
	require.NoError(t, err)

	_, err = svc.Validate(pair.Access, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Validate(pair.Refresh, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, -time.Minute)

	pair, err := svc.IssuePair(7, "user")
	require.NoError(t, err)

	_, err = svc.Validate(pair.Access, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	pair, err := newTestTokenService().IssuePair(7, "user")
	require.NoError(t, err)

	other := NewTokenService("another-secret", 15*time.Minute, time.Hour)
	_, err = other.Validate(pair.Access, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	_, err := newTestTokenService().Validate("not-a-token", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
