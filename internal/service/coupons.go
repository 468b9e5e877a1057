package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchwell/storefront/internal/models"
	"github.com/stitchwell/storefront/internal/repo"
	"github.com/stitchwell/storefront/internal/transport"
)

type CouponService struct {
	Repo *repo.GormRepo
}

func (s *CouponService) ListCoupons(ctx context.Context, f repo.CouponFilter, limit, offset int) (int64, []models.Coupon, error) {
	return s.Repo.ListCoupons(ctx, f, limit, offset)
}

func (s *CouponService) GetCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	return s.Repo.GetCoupon(ctx, id)
}

func (s *CouponService) CreateCoupon(ctx context.Context, req transport.CreateCouponRequest) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, fmt.Errorf("%w: code required", ErrValidation)
	}

	couponType, err := parseCouponType(req.Type)
	if err != nil {
		return nil, err
	}
	if req.Value.IsNegative() {
		return nil, fmt.Errorf("%w: value must be >= 0", ErrValidation)
	}
	if couponType == models.CouponTypePercent && req.Value.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: percent value must be <= 100", ErrValidation)
	}

	coupon := &models.Coupon{
		ID:             uuid.New(),
		Code:           code,
		Type:           couponType,
		Value:          req.Value,
		Active:         true,
		MaxRedemptions: req.MaxRedemptions,
		ExpiresAt:      req.ExpiresAt,
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}

	if err := s.Repo.CreateCoupon(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) PatchCoupon(ctx context.Context, id uuid.UUID, req transport.PatchCouponRequest) (*models.Coupon, error) {
	coupon, err := s.Repo.GetCoupon(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if code == "" {
			return nil, fmt.Errorf("%w: code cannot be empty", ErrValidation)
		}
		coupon.Code = code
	}
	if req.Type != nil {
		couponType, err := parseCouponType(*req.Type)
		if err != nil {
			return nil, err
		}
		coupon.Type = couponType
	}
	if req.Value != nil {
		if req.Value.IsNegative() {
			return nil, fmt.Errorf("%w: value must be >= 0", ErrValidation)
		}
		coupon.Value = *req.Value
	}
	if req.Active != nil {
		coupon.Active = *req.Active
	}
	if req.MaxRedemptions != nil {
		coupon.MaxRedemptions = *req.MaxRedemptions
	}
	if req.ExpiresAt != nil {
		coupon.ExpiresAt = req.ExpiresAt
	}

	if err := s.Repo.UpdateCoupon(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *CouponService) DeleteCoupon(ctx context.Context, id uuid.UUID) error {
	return s.Repo.DeleteCoupon(ctx, id)
}

var hundred = decimal.NewFromInt(100)

func parseCouponType(raw string) (models.CouponType, error) {
	switch models.CouponType(raw) {
	case models.CouponTypePercent:
		return models.CouponTypePercent, nil
	case models.CouponTypeFixed:
		return models.CouponTypeFixed, nil
	default:
		return "", fmt.Errorf("%w: type must be percent or fixed", ErrValidation)
	}
}
