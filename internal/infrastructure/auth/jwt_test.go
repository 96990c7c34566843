package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(ttl time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		Secret:          "test-secret-at-least-32-characters-long",
		Issuer:          "worklog-test",
		AccessTokenTTL:  ttl,
		RefreshTokenTTL: 2 * ttl,
	})
}

func TestJWTServiceGenerateTokenPair(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	pair, err := svc.GenerateTokenPair("user-1", "jane@example.com", "B12345678")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)
}

func TestJWTServiceValidate(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	pair, err := svc.GenerateTokenPair("user-1", "jane@example.com", "B12345678")
	require.NoError(t, err)

	t.Run("access token round trip", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "jane@example.com", claims.Email)
		assert.Equal(t, "B12345678", claims.TenantCIF)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.Equal(t, "worklog-test", claims.Issuer)
		assert.NotEmpty(t, claims.ID)
		assert.False(t, claims.GetIssuedAtTime().IsZero())
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})

	t.Run("token type mismatch", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)

		_, err = svc.ValidateRefreshToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("each token gets its own jti", func(t *testing.T) {
		second, err := svc.GenerateTokenPair("user-1", "jane@example.com", "B12345678")
		require.NoError(t, err)

		first, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		other, err := svc.ValidateAccessToken(second.AccessToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, other.ID)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTService(JWTConfig{
			Secret: "a-completely-different-signing-secret!!",
			Issuer: "worklog-test",
		})
		_, err := other.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTServiceExpiry(t *testing.T) {
	svc := newTestService(-time.Minute)

	pair, err := svc.GenerateTokenPair("user-1", "jane@example.com", "")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTServiceDefaults(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: "test-secret-at-least-32-characters-long"})
	assert.Equal(t, 15*time.Minute, svc.AccessTokenTTL())
}
