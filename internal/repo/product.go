package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/models"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementInventory subtracts qty from a tracked product with enough stock.
// Missing, untracked, and understocked products all report ErrRecordNotFound;
// callers on the ingestion path swallow it.
func (r *GormRepo) DecrementInventory(ctx context.Context, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be > 0")
	}

	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND track_inventory = ? AND inventory >= ?", id, true, qty).
		Update("inventory", gorm.Expr("inventory - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
