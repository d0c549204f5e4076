package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tienda-shop/tienda/internal/models"
	"github.com/tienda-shop/tienda/internal/transport"
)

func (r *GormRepo) ListBrands(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormRepo) GetBrand(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.DB.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, err
	}
	return &brand, nil
}

func (r *GormRepo) BrandNameExists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Brand{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return r.DB.WithContext(ctx).Create(brand).Error
}

func (r *GormRepo) CountBrandProducts(ctx context.Context, brandID uint) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("brand_id = ?", brandID).Count(&count).Error
	return count, err
}

func (r *GormRepo) DeleteBrand(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Brand{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Brand").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts pages through the catalog, optionally narrowed by brand and
// by a name substring.
func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int, brandID uint, query string) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if brandID != 0 {
		q = q.Where("brand_id = ?", brandID)
	}
	if query != "" {
		q = q.Where("name LIKE ?", "%"+query+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := q.Preload("Brand").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) ProductModelExists(ctx context.Context, brandID uint, model string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB.WithContext(ctx).Model(&models.Product{}).Where("brand_id = ? AND model = ?", brandID, model)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *GormRepo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}

	if req.BrandID != nil {
		product.BrandID = *req.BrandID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.VIP != nil {
		product.VIP = *req.VIP
	}

	if err := r.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
