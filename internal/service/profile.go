package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/transport"
)

var cardNetworks = map[string]bool{
	"VISA":       true,
	"MASTERCARD": true,
}

// GetProfile creates the profile lazily on first visit.
func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	return s.Repo.GetOrCreateProfile(ctx, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, req transport.ProfileRequest) (*models.CustomerProfile, error) {
	profile, err := s.Repo.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.VIP != nil {
		profile.VIP = *req.VIP
	}
	if req.Balance != nil {
		profile.Balance = *req.Balance
	}

	if err := s.Repo.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AccountService) GetAddress(ctx context.Context, userID uint) (*models.Address, error) {
	return s.Repo.GetOrCreateAddress(ctx, userID)
}

func (s *AccountService) UpdateAddress(ctx context.Context, userID uint, req transport.AddressRequest) (*models.Address, error) {
	address, err := s.Repo.GetOrCreateAddress(ctx, userID)
	if err != nil {
		return nil, err
	}

	address.Shipping = req.Shipping
	address.Billing = req.Billing

	if err := s.Repo.SaveAddress(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *AccountService) GetCard(ctx context.Context, userID uint) (*models.PaymentCard, error) {
	return s.Repo.GetOrCreateCard(ctx, userID)
}

func (s *AccountService) UpdateCard(ctx context.Context, userID uint, req transport.CardRequest) (*models.PaymentCard, error) {
	if req.Network != "" && !cardNetworks[req.Network] {
		return nil, fmt.Errorf("%w: unsupported card network %q", ErrValidation, req.Network)
	}

	var expiry *time.Time
	if req.Expiry != "" {
		parsed, err := time.Parse("2006-01", req.Expiry)
		if err != nil {
			return nil, fmt.Errorf("%w: expiry must be YYYY-MM", ErrValidation)
		}
		expiry = &parsed
	}

	card, err := s.Repo.GetOrCreateCard(ctx, userID)
	if err != nil {
		return nil, err
	}

	card.Name = req.Name
	card.Network = req.Network
	card.Holder = req.Holder
	card.Expiry = expiry

	if err := s.Repo.SaveCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}
