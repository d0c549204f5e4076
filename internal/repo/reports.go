package repo

import (
	"context"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/transport"
)

const reportLimit = 10

func (r *GormRepo) TopProducts(ctx context.Context) ([]transport.ProductSalesRow, error) {
	var rows []transport.ProductSalesRow
	err := r.DB.WithContext(ctx).
		Model(&models.Purchase{}).
		Select("purchases.product_id AS product_id, products.name AS name, products.model AS model, SUM(purchases.quantity) AS units, SUM(purchases.amount) AS amount").
		Joins("JOIN products ON products.id = purchases.product_id").
		Group("purchases.product_id, products.name, products.model").
		Order("units DESC").
		Limit(reportLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) TopCustomers(ctx context.Context) ([]transport.CustomerSpendRow, error) {
	var rows []transport.CustomerSpendRow
	err := r.DB.WithContext(ctx).
		Model(&models.Purchase{}).
		Select("purchases.profile_id AS profile_id, users.username AS username, SUM(purchases.amount) AS spent").
		Joins("JOIN customer_profiles ON customer_profiles.id = purchases.profile_id").
		Joins("JOIN users ON users.id = customer_profiles.user_id").
		Group("purchases.profile_id, users.username").
		Order("spent DESC").
		Limit(reportLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) PurchaseHistory(ctx context.Context, offset, limit int) (int64, []models.Purchase, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Purchase{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var purchases []models.Purchase
	if err := r.DB.WithContext(ctx).
		Order("date DESC").
		Offset(offset).
		Limit(limit).
		Find(&purchases).Error; err != nil {
		return 0, nil, err
	}

	return total, purchases, nil
}
