package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/models"
)

type EventFilter struct {
	Published *bool
}

func (r *GormRepo) ListEvents(ctx context.Context, f EventFilter, limit, offset int) (int64, []models.Event, error) {
	q := r.DB.WithContext(ctx).Model(&models.Event{})
	if f.Published != nil {
		q = q.Where("published = ?", *f.Published)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var events []models.Event
	if err := q.Order("starts_at ASC").Limit(limit).Offset(offset).Find(&events).Error; err != nil {
		return 0, nil, err
	}
	return total, events, nil
}

func (r *GormRepo) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.DB.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormRepo) CreateEvent(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

func (r *GormRepo) UpdateEvent(ctx context.Context, event *models.Event) error {
	return r.DB.WithContext(ctx).Save(event).Error
}

func (r *GormRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
