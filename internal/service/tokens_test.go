package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienda-shop/tienda/internal/models"
)

func newTokenService(t *testing.T) *TokenService {
	t.Helper()
	return &TokenService{
		Repo:          newTestRepo(t),
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
}

func TestSignAccessToken_RoundTrip(t *testing.T) {
	svc := newTokenService(t)
	exp := time.Now().Add(accessTokenTTL)

	token, err := svc.SignAccessToken(7, "admin", exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestParseAccessToken_RejectsExpired(t *testing.T) {
	svc := newTokenService(t)

	token, err := svc.SignAccessToken(7, "user", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	require.Error(t, err)
}

func TestValidateRefresh_RejectsAccessToken(t *testing.T) {
	svc := newTokenService(t)
	ctx := context.Background()

	// an access token signed with the refresh secret still lacks the typ claim
	wrongTyp := &TokenService{Repo: svc.Repo, JWTSecret: svc.RefreshSecret, RefreshSecret: svc.RefreshSecret}
	token, err := wrongTyp.SignAccessToken(7, "user", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = svc.ValidateRefresh(ctx, token)
	require.Error(t, err)
}

func TestValidateRefresh_RejectsUnknownToken(t *testing.T) {
	svc := newTokenService(t)

	exp := time.Now().Add(refreshTokenTTL)
	token, err := svc.SignRefreshToken(7, "user", exp)
	require.NoError(t, err)

	// never stored
	_, err = svc.ValidateRefresh(context.Background(), token)
	require.Error(t, err)
}

func TestRotateToken_RevokesOldAndStoresNew(t *testing.T) {
	svc := newTokenService(t)
	ctx := context.Background()

	exp := time.Now().Add(refreshTokenTTL)
	old, err := svc.SignRefreshToken(7, "user", exp)
	require.NoError(t, err)
	require.NoError(t, svc.StoreRefreshToken(ctx, old, 7, "user", exp))

	access, refresh, err := svc.RotateToken(ctx, old)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, old, refresh)

	claims, err := svc.ParseAccessToken(access)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims["sub"])

	var stored models.RefreshToken
	require.NoError(t, svc.Repo.DB.Where("token = ?", old).First(&stored).Error)
	assert.True(t, stored.Revoked)

	// old token cannot be rotated twice
	_, _, err = svc.RotateToken(ctx, old)
	require.Error(t, err)

	// the new one can
	_, _, err = svc.RotateToken(ctx, refresh)
	require.NoError(t, err)
}
