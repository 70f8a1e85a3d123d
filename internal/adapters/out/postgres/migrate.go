package postgres

import (
	"marketplace/internal/adapters/out/postgres/personrepo"
	"marketplace/internal/adapters/out/postgres/requestrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the delivery request and delivery person tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&requestrepo.DeliveryRequestDTO{}, &personrepo.DeliveryPersonDTO{})
}
