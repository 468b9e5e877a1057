package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/models"
)

type CouponFilter struct {
	Code   string
	Active *bool
}

func (r *GormRepo) ListCoupons(ctx context.Context, f CouponFilter, limit, offset int) (int64, []models.Coupon, error) {
	q := r.DB.WithContext(ctx).Model(&models.Coupon{})
	if f.Code != "" {
		q = q.Where("UPPER(code) LIKE ?", "%"+strings.ToUpper(f.Code)+"%")
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var coupons []models.Coupon
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&coupons).Error; err != nil {
		return 0, nil, err
	}
	return total, coupons, nil
}

func (r *GormRepo) GetCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.DB.WithContext(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *GormRepo) CreateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.DB.WithContext(ctx).Create(coupon).Error
}

func (r *GormRepo) UpdateCoupon(ctx context.Context, coupon *models.Coupon) error {
	return r.DB.WithContext(ctx).Save(coupon).Error
}

func (r *GormRepo) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
