package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/events"
	"github.com/tienda-shop/tienda/internal/hash"
	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
)

type AccountService struct {
	Repo     *repo.GormRepo
	Tokens   *TokenService
	Producer *events.Producer
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *AccountService) publish(ctx context.Context, userID uint, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicUsers, strconv.FormatUint(uint64(userID), 10), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

// Register creates the user together with its zero-balance customer profile.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	exists, err := s.Repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: user %q already exists", ErrConflict, username)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         "user",
	}
	if _, err := s.Repo.CreateUserWithProfile(ctx, &user); err != nil {
		return nil, err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	return &user, nil
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.Repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", ErrValidation)
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid username or password", ErrValidation)
	}

	accessExp := time.Now().Add(accessTokenTTL)
	accessToken, err := s.Tokens.SignAccessToken(user.ID, user.Role, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	refreshToken, err := s.Tokens.SignRefreshToken(user.ID, user.Role, refreshExp)
	if err != nil {
		return nil, err
	}

	if err := s.Tokens.StoreRefreshToken(ctx, refreshToken, user.ID, user.Role, refreshExp); err != nil {
		return nil, err
	}

	s.publish(ctx, user.ID, map[string]any{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      user.Role == "admin",
	}, nil
}

func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}
