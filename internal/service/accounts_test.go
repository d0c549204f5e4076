package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/transport"
)

func newAccountService(t *testing.T) *AccountService {
	t.Helper()
	r := newTestRepo(t)
	tokens := &TokenService{
		Repo:          r,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	return &AccountService{Repo: r, Tokens: tokens}
}

func TestRegister_CreatesZeroBalanceProfile(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "new_user", "new@example.com", "password")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "password", user.PasswordHash)

	var profiles []models.CustomerProfile
	require.NoError(t, svc.Repo.DB.Where("user_id = ?", user.ID).Find(&profiles).Error)
	require.Len(t, profiles, 1)
	assert.True(t, profiles[0].Balance.IsZero(), "balance = %s", profiles[0].Balance)
	assert.False(t, profiles[0].VIP)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "taken", "", "password")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "taken", "", "other")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret"},
		{name: "empty password", username: "user", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, "", tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestLogin_ReturnsSignedTokens(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "", "password")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice", "password")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	require.NotEmpty(t, res.RefreshToken)
	assert.False(t, res.IsAdmin)

	claims, err := svc.Tokens.ParseAccessToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user", claims["role"])

	var stored models.RefreshToken
	require.NoError(t, svc.Repo.DB.Where("token = ?", res.RefreshToken).First(&stored).Error)
	assert.False(t, stored.Revoked)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "", "password")
	require.NoError(t, err)

	res, err := svc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrValidation)

	res, err = svc.Login(ctx, "nobody", "password")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "", "password")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "alice", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, res.RefreshToken))

	var stored models.RefreshToken
	require.NoError(t, svc.Repo.DB.Where("token = ?", res.RefreshToken).First(&stored).Error)
	assert.True(t, stored.Revoked)

	_, err = svc.Tokens.ValidateRefresh(ctx, res.RefreshToken)
	require.Error(t, err)
}

func TestUpdateProfile_SetsBalanceAndVIP(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "", "password")
	require.NoError(t, err)

	vip := true
	balance := decimal.RequireFromString("250.50")
	profile, err := svc.UpdateProfile(ctx, user.ID, transport.ProfileRequest{VIP: &vip, Balance: &balance})
	require.NoError(t, err)
	assert.True(t, profile.VIP)
	assert.True(t, profile.Balance.Equal(balance))
}

func TestGetProfile_CreatesLazily(t *testing.T) {
	svc := newAccountService(t)

	// no profile row yet for this user id
	profile, err := svc.GetProfile(context.Background(), 42)
	require.NoError(t, err)
	assert.EqualValues(t, 42, profile.UserID)
	assert.True(t, profile.Balance.IsZero())
}

func TestUpdateCard_NetworkAndExpiry(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "", "password")
	require.NoError(t, err)

	card, err := svc.UpdateCard(ctx, user.ID, transport.CardRequest{
		Name:    "main card",
		Network: "VISA",
		Holder:  "ALICE SMITH",
		Expiry:  "2027-05",
	})
	require.NoError(t, err)
	assert.Equal(t, "VISA", card.Network)
	require.NotNil(t, card.Expiry)
	assert.Equal(t, 2027, card.Expiry.Year())

	_, err = svc.UpdateCard(ctx, user.ID, transport.CardRequest{Network: "AMEX"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateCard(ctx, user.ID, transport.CardRequest{Network: "VISA", Expiry: "05/27"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateAddress_Upserts(t *testing.T) {
	svc := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "", "password")
	require.NoError(t, err)

	first, err := svc.UpdateAddress(ctx, user.ID, transport.AddressRequest{Shipping: "1 Main St", Billing: "1 Main St"})
	require.NoError(t, err)

	second, err := svc.UpdateAddress(ctx, user.ID, transport.AddressRequest{Shipping: "2 Oak Ave", Billing: "1 Main St"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "2 Oak Ave", second.Shipping)

	var count int64
	require.NoError(t, svc.Repo.DB.Model(&models.Address{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
