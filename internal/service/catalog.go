package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/events"
	"github.com/tienda-shop/tienda/internal/logging"
	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/repo"
	"github.com/tienda-shop/tienda/internal/search"
	"github.com/tienda-shop/tienda/internal/transport"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
}

func (s *CatalogService) publish(ctx context.Context, key string, event map[string]any) {
	if err := s.Producer.PublishEvent(ctx, events.TopicProducts, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}

func (s *CatalogService) index(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}
	brandName := ""
	if brand, err := s.Repo.GetBrand(ctx, product.BrandID); err == nil {
		brandName = brand.Name
	}
	if err := search.IndexProduct(ctx, s.ES, product, brandName); err != nil {
		logging.FromContext(ctx).Error("es index error", "product_id", product.ID, "error", err)
	}
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]models.Brand, error) {
	return s.Repo.ListBrands(ctx)
}

func (s *CatalogService) CreateBrand(ctx context.Context, name string) (*models.Brand, error) {
	if name == "" || len(name) > 30 {
		return nil, fmt.Errorf("%w: brand name must be 1-30 characters", ErrValidation)
	}

	exists, err := s.Repo.BrandNameExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: brand %q already exists", ErrConflict, name)
	}

	brand := models.Brand{Name: name}
	if err := s.Repo.CreateBrand(ctx, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// DeleteBrand refuses to remove a brand that still has products, mirroring
// the RESTRICT constraint on the foreign key.
func (s *CatalogService) DeleteBrand(ctx context.Context, id uint) error {
	count, err := s.Repo.CountBrandProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: brand has %d products", ErrConflict, count)
	}

	if err := s.Repo.DeleteBrand(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: brand %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, offset, limit int, brandID uint, query string) (int64, []models.Product, error) {
	return s.Repo.ListProducts(ctx, offset, limit, brandID, query)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.Model == "" {
		return nil, fmt.Errorf("%w: name and model are required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	if _, err := s.Repo.GetBrand(ctx, req.BrandID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown brand %d", ErrValidation, req.BrandID)
		}
		return nil, err
	}

	exists, err := s.Repo.ProductModelExists(ctx, req.BrandID, req.Model, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: model %q already exists for this brand", ErrConflict, req.Model)
	}

	product := models.Product{
		BrandID: req.BrandID,
		Name:    req.Name,
		Model:   req.Model,
		Stock:   req.Stock,
		Price:   req.Price,
		VIP:     req.VIP,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	s.index(ctx, &product)
	s.publish(ctx, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":      "product_created",
		"productID": product.ID,
		"name":      product.Name,
	})
	return &product, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	current, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}

	brandID := current.BrandID
	if req.BrandID != nil {
		brandID = *req.BrandID
		if _, err := s.Repo.GetBrand(ctx, brandID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: unknown brand %d", ErrValidation, brandID)
			}
			return nil, err
		}
	}
	model := current.Model
	if req.Model != nil {
		model = *req.Model
	}
	if brandID != current.BrandID || model != current.Model {
		exists, err := s.Repo.ProductModelExists(ctx, brandID, model, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: model %q already exists for this brand", ErrConflict, model)
		}
	}

	product, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		return nil, err
	}

	s.index(ctx, product)
	s.publish(ctx, strconv.FormatUint(uint64(product.ID), 10), map[string]any{
		"type":      "product_updated",
		"productID": product.ID,
		"name":      product.Name,
	})
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return err
	}

	if s.ES != nil {
		if err := search.DeleteProduct(ctx, s.ES, id); err != nil {
			logging.FromContext(ctx).Error("es delete error", "product_id", id, "error", err)
		}
	}
	s.publish(ctx, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}
