package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/hash"
	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Brand{},
		&models.Product{},
		&models.User{},
		&models.CustomerProfile{},
		&models.Purchase{},
		&models.Address{},
		&models.PaymentCard{},
		&models.Comment{},
		&models.RefreshToken{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return repo.New(db)
}

func seedCustomer(t *testing.T, r *repo.GormRepo, username, balance string) (*models.User, *models.CustomerProfile) {
	t.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)

	user := models.User{Username: username, PasswordHash: pwHash, Role: "user"}
	profile, err := r.CreateUserWithProfile(context.Background(), &user)
	require.NoError(t, err)

	profile.Balance = decimal.RequireFromString(balance)
	require.NoError(t, r.SaveProfile(context.Background(), profile))

	return &user, profile
}

func seedProduct(t *testing.T, r *repo.GormRepo, brandName, name, model string, stock uint, price string) *models.Product {
	t.Helper()
	ctx := context.Background()

	var brand models.Brand
	err := r.DB.Where("name = ?", brandName).First(&brand).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		brand = models.Brand{Name: brandName}
		require.NoError(t, r.CreateBrand(ctx, &brand))
	} else {
		require.NoError(t, err)
	}

	product := models.Product{
		BrandID: brand.ID,
		Name:    name,
		Model:   model,
		Stock:   stock,
		Price:   decimal.RequireFromString(price),
	}
	require.NoError(t, r.CreateProduct(ctx, &product))
	return &product
}
