package repo

import (
	"context"

	"github.com/tienda-shop/tienda/internal/models"
)

// ListProductComments returns a product's comments newest first. Moderated
// comments are excluded unless includeModerated is set.
func (r *GormRepo) ListProductComments(ctx context.Context, productID uint, includeModerated bool) ([]models.Comment, error) {
	q := r.DB.WithContext(ctx).Where("product_id = ?", productID)
	if !includeModerated {
		q = q.Where("moderated = ?", false)
	}

	var comments []models.Comment
	if err := q.Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *GormRepo) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.DB.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormRepo) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Create(comment).Error
}

func (r *GormRepo) SaveComment(ctx context.Context, comment *models.Comment) error {
	return r.DB.WithContext(ctx).Save(comment).Error
}

// HasPurchased reports whether the user's profile holds at least one ledger
// row for the product.
func (r *GormRepo) HasPurchased(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.Purchase{}).
		Joins("JOIN customer_profiles ON customer_profiles.id = purchases.profile_id").
		Where("customer_profiles.user_id = ? AND purchases.product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}
