package repo

import (
	"gorm.io/gorm"

	"github.com/stitchwell/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.Subscription{},
		&models.Product{},
		&models.Coupon{},
		&models.Event{},
		&models.Review{},
		&models.AdminUser{},
	)
}
