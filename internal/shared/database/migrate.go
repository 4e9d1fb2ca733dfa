package database

import (
	"rently/internal/bookings"
	"rently/internal/owners"
	"rently/internal/reviews"
	"rently/internal/vehicles"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&owners.Owner{},
		&vehicles.Vehicle{},
		&bookings.VehicleBooking{},
		&reviews.VehicleReview{},
	)
}
