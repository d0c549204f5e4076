package repo

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/models"
)

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// CreateUserWithProfile inserts the user and its zero-balance profile in one
// transaction; registration never produces a user without a wallet.
func (r *GormRepo) CreateUserWithProfile(ctx context.Context, user *models.User) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile = models.CustomerProfile{
			UserID:  user.ID,
			VIP:     false,
			Balance: decimal.Zero,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) GetOrCreateProfile(ctx context.Context, userID uint) (*models.CustomerProfile, error) {
	var profile models.CustomerProfile
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.CustomerProfile{UserID: userID, Balance: decimal.Zero}
		if err := r.DB.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, err
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *GormRepo) SaveProfile(ctx context.Context, profile *models.CustomerProfile) error {
	return r.DB.WithContext(ctx).Save(profile).Error
}

func (r *GormRepo) GetOrCreateAddress(ctx context.Context, userID uint) (*models.Address, error) {
	var address models.Address
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		address = models.Address{UserID: userID}
		if err := r.DB.WithContext(ctx).Create(&address).Error; err != nil {
			return nil, err
		}
		return &address, nil
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *GormRepo) SaveAddress(ctx context.Context, address *models.Address) error {
	return r.DB.WithContext(ctx).Save(address).Error
}

func (r *GormRepo) GetOrCreateCard(ctx context.Context, userID uint) (*models.PaymentCard, error) {
	var card models.PaymentCard
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		card = models.PaymentCard{UserID: userID}
		if err := r.DB.WithContext(ctx).Create(&card).Error; err != nil {
			return nil, err
		}
		return &card, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *GormRepo) SaveCard(ctx context.Context, card *models.PaymentCard) error {
	return r.DB.WithContext(ctx).Save(card).Error
}
