package repo

import (
	"context"

	"github.com/stitchwell/storefront/internal/models"
)

func (r *GormRepo) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.DB.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateAdmin(ctx context.Context, user *models.AdminUser) error {
	return r.DB.WithContext(ctx).Create(user).Error
}
