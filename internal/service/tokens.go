package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type TokenService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

func (t *TokenService) SignAccessToken(userID uint, role string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.JWTSecret)
}

func (t *TokenService) SignRefreshToken(userID uint, role string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"typ":  "refresh",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.RefreshSecret)
}

func (t *TokenService) StoreRefreshToken(ctx context.Context, raw string, userID uint, role string, exp time.Time) error {
	stored := models.RefreshToken{
		Token:     raw,
		UserID:    userID,
		Role:      role,
		ExpiresAt: exp.Unix(),
		Revoked:   false,
	}
	if err := t.Repo.SaveRefreshToken(ctx, &stored); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// ParseAccessToken verifies the signature and expiry of an access token.
func (t *TokenService) ParseAccessToken(raw string) (jwt.MapClaims, error) {
	return parseHMAC(raw, t.JWTSecret)
}

// ValidateRefresh checks signature, typ claim and the stored row.
func (t *TokenService) ValidateRefresh(ctx context.Context, raw string) (jwt.MapClaims, error) {
	claims, err := parseHMAC(raw, t.RefreshSecret)
	if err != nil {
		return nil, err
	}

	if typ, ok := claims["typ"]; !ok || typ != "refresh" {
		return nil, fmt.Errorf("not a refresh token")
	}

	stored, err := t.Repo.GetRefreshToken(ctx, raw)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("refresh token not found")
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().Unix() > stored.ExpiresAt {
		return nil, errors.New("refresh token expired")
	}

	return claims, nil
}

// RotateToken trades a valid refresh token for a fresh access/refresh pair.
func (t *TokenService) RotateToken(ctx context.Context, rawToken string) (string, string, error) {
	claims, err := t.ValidateRefresh(ctx, rawToken)
	if err != nil {
		return "", "", err
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return "", "", errors.New("invalid subject claim")
	}
	role, ok := claims["role"].(string)
	if !ok {
		return "", "", errors.New("invalid role claim")
	}
	userID := uint(sub)

	newAccess, err := t.SignAccessToken(userID, role, time.Now().Add(accessTokenTTL))
	if err != nil {
		return "", "", err
	}

	refreshExp := time.Now().Add(refreshTokenTTL)
	newRefresh, err := t.SignRefreshToken(userID, role, refreshExp)
	if err != nil {
		return "", "", err
	}

	if err := t.Repo.RevokeRefreshToken(ctx, rawToken); err != nil {
		return "", "", err
	}
	if err := t.StoreRefreshToken(ctx, newRefresh, userID, role, refreshExp); err != nil {
		return "", "", err
	}

	return newAccess, newRefresh, nil
}

func parseHMAC(raw string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("cannot parse claims")
	}
	return claims, nil
}
