package repo

import (
	"context"

	"github.com/stitchwell/storefront/internal/models"
)

func (r *GormRepo) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *GormRepo) GetSubscriptionByProviderID(ctx context.Context, providerID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.DB.WithContext(ctx).First(&sub, "provider_subscription_id = ?", providerID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *GormRepo) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	return r.DB.WithContext(ctx).Save(sub).Error
}

func (r *GormRepo) SetSubscriptionStatus(ctx context.Context, providerID string, status models.SubscriptionStatus) error {
	return r.DB.WithContext(ctx).Model(&models.Subscription{}).
		Where("provider_subscription_id = ?", providerID).
		Update("status", status).Error
}
