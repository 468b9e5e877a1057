package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Omit("Items").Create(order).Error
}

func (r *GormRepo) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&items).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrderByCheckoutSession(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "checkout_session_id = ?", sessionID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, limit, offset int) (int64, []models.Order, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) SetOrderSubscription(ctx context.Context, orderID, subscriptionID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("subscription_id", subscriptionID).Error
}

func (r *GormRepo) SetOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) SetOrderPaymentStatus(ctx context.Context, orderID uuid.UUID, status models.PaymentStatus) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("payment_status", status).Error
}
