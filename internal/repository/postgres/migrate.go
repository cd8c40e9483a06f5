package postgres

import (
	"fmt"

	"customerAgent/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.CustomerProfile{},
		&domain.CustomerAddress{},
		&domain.BrowsingHistory{},
		&domain.PurchaseHistory{},
		&domain.CustomerSegment{},
		&domain.Product{},
		&recommendationRow{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
