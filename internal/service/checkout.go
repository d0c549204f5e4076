package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/events"
	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
)

// DefaultTaxRate is recorded on every purchase row.
var DefaultTaxRate = decimal.New(21, -2)

type CheckoutService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
}

// Checkout converts a quantity selection into a committed purchase: it
// decrements stock, writes the ledger row and debits the wallet in a single
// transaction. Either all three writes commit or none do.
func (s *CheckoutService) Checkout(ctx context.Context, productID, userID uint, quantity int) (*models.Purchase, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrValidation)
	}

	var purchase models.Purchase
	txErr := s.Repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return err
		}

		var profile models.CustomerProfile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: customer profile", ErrNotFound)
			}
			return err
		}

		if uint(quantity) > product.Stock {
			return fmt.Errorf("%w: only %d units in stock", ErrValidation, product.Stock)
		}

		product.Stock -= uint(quantity)
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		amount := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		purchase = models.Purchase{
			ProductID: product.ID,
			ProfileID: profile.ID,
			Date:      time.Now().UTC(),
			Quantity:  uint(quantity),
			Amount:    amount,
			TaxRate:   DefaultTaxRate,
		}
		if err := tx.Create(&purchase).Error; err != nil {
			return err
		}

		profile.Balance = profile.Balance.Sub(amount)
		return tx.Save(&profile).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := s.Producer.PublishEvent(ctx, events.TopicPurchases,
		strconv.FormatUint(uint64(userID), 10),
		map[string]any{
			"type":       "purchase_completed",
			"purchaseID": purchase.ID,
			"productID":  purchase.ProductID,
			"userID":     userID,
			"quantity":   purchase.Quantity,
			"amount":     purchase.Amount.StringFixed(2),
		}); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}

	return &purchase, nil
}
