package auth_test

import (
	"testing"
	"time"

	"github.com/reehan7086/EchoVibe-sub000/config"
	"github.com/reehan7086/EchoVibe-sub000/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwtCfg() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 168 * time.Hour,
		Issuer:        "echovibe",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := jwtCfg()
	token, err := auth.GenerateAccessToken(cfg, 42, "a@b.com", "alice")
	require.NoError(t, err)

	claims, err := auth.ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	cfg := jwtCfg()
	token, err := auth.GenerateAccessToken(cfg, 42, "a@b.com", "alice")
	require.NoError(t, err)

	other := jwtCfg()
	other.AccessSecret = "different"
	_, err = auth.ParseAccessToken(other, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAccessTokenExpired(t *testing.T) {
	cfg := jwtCfg()
	cfg.AccessExpiry = -time.Minute
	token, err := auth.GenerateAccessToken(cfg, 42, "a@b.com", "alice")
	require.NoError(t, err)

	_, err = auth.ParseAccessToken(cfg, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := jwtCfg()
	token, err := auth.GenerateRefreshToken(cfg, 7)
	require.NoError(t, err)

	id, err := auth.ParseRefreshToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	cfg := jwtCfg()
	refresh, err := auth.GenerateRefreshToken(cfg, 7)
	require.NoError(t, err)

	_, err = auth.ParseAccessToken(cfg, refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	cfg := jwtCfg()
	_, err := auth.ParseAccessToken(cfg, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	_, err = auth.ParseRefreshToken(cfg, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
