package service

import (
	"context"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
	"github.com/tienda-shop/tienda/internal/transport"
)

// ReportService runs the read-only sales aggregations.
type ReportService struct {
	Repo *repo.GormRepo
}

func (s *ReportService) TopProducts(ctx context.Context) ([]transport.ProductSalesRow, error) {
	return s.Repo.TopProducts(ctx)
}

func (s *ReportService) TopCustomers(ctx context.Context) ([]transport.CustomerSpendRow, error) {
	return s.Repo.TopCustomers(ctx)
}

func (s *ReportService) PurchaseHistory(ctx context.Context, offset, limit int) (int64, []models.Purchase, error) {
	return s.Repo.PurchaseHistory(ctx, offset, limit)
}
