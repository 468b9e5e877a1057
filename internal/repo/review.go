package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/models"
)

type ReviewFilter struct {
	Status models.ReviewStatus
	Rating int
}

func (r *GormRepo) ListReviews(ctx context.Context, f ReviewFilter, limit, offset int) (int64, []models.Review, error) {
	q := r.DB.WithContext(ctx).Model(&models.Review{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Rating > 0 {
		q = q.Where("rating = ?", f.Rating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error; err != nil {
		return 0, nil, err
	}
	return total, reviews, nil
}

func (r *GormRepo) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.DB.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormRepo) CreateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Create(review).Error
}

func (r *GormRepo) CreateReviews(ctx context.Context, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Create(&reviews).Error
}

func (r *GormRepo) UpdateReview(ctx context.Context, review *models.Review) error {
	return r.DB.WithContext(ctx).Save(review).Error
}

func (r *GormRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
