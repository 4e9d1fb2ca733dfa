package bookings

import (
	"time"

	"github.com/google/uuid"
)

// VehicleBooking is one rental reservation. The analytics pipeline consumes
// these rows verbatim, so field semantics here are the contract for every
// downstream report.
//
// PickupTime is stored as a wall clock string ("HH:MM", 24h). Bookings
// imported from older records may have it empty, in which case reports treat
// it as midday.
type VehicleBooking struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VehicleID      uuid.UUID     `json:"vehicle_id" gorm:"type:uuid;not null;index"`
	OwnerID        uuid.UUID     `json:"owner_id" gorm:"type:uuid;not null;index"`
	CustomerID     string        `json:"customer_id" gorm:"size:100;index"`
	CustomerEmail  string        `json:"customer_email" gorm:"size:255"`
	Status         BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount    float64       `json:"total_amount" gorm:"not null;check:total_amount >= 0"`
	PickupDate     time.Time     `json:"pickup_date" gorm:"not null"`
	DropoffDate    time.Time     `json:"dropoff_date" gorm:"not null"`
	PickupTime     string        `json:"pickup_time" gorm:"size:5"`
	PickupLocation string        `json:"pickup_location" gorm:"size:255"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

type BookingResponse struct {
	ID             string        `json:"id"`
	VehicleID      string        `json:"vehicle_id"`
	OwnerID        string        `json:"owner_id"`
	CustomerID     string        `json:"customer_id"`
	CustomerEmail  string        `json:"customer_email"`
	Status         BookingStatus `json:"status"`
	TotalAmount    float64       `json:"total_amount"`
	PickupDate     time.Time     `json:"pickup_date"`
	DropoffDate    time.Time     `json:"dropoff_date"`
	PickupTime     string        `json:"pickup_time"`
	PickupLocation string        `json:"pickup_location"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type CreateBookingRequest struct {
	VehicleID      string  `json:"vehicle_id" validate:"required,uuid"`
	CustomerID     string  `json:"customer_id" validate:"required,min=1,max=100"`
	CustomerEmail  string  `json:"customer_email" validate:"required,email"`
	TotalAmount    float64 `json:"total_amount" validate:"required,gt=0"`
	PickupDate     string  `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	DropoffDate    string  `json:"dropoff_date" validate:"required,datetime=2006-01-02"`
	PickupTime     string  `json:"pickup_time" validate:"omitempty,datetime=15:04"`
	PickupLocation string  `json:"pickup_location" validate:"max=255"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
}

type BookingListQuery struct {
	Status    string `form:"status"`
	VehicleID string `form:"vehicle_id"`
	Limit     int    `form:"limit,default=50"`
	Offset    int    `form:"offset,default=0"`
}

func toBookingResponse(b *VehicleBooking) BookingResponse {
	return BookingResponse{
		ID:             b.ID.String(),
		VehicleID:      b.VehicleID.String(),
		OwnerID:        b.OwnerID.String(),
		CustomerID:     b.CustomerID,
		CustomerEmail:  b.CustomerEmail,
		Status:         b.Status,
		TotalAmount:    b.TotalAmount,
		PickupDate:     b.PickupDate,
		DropoffDate:    b.DropoffDate,
		PickupTime:     b.PickupTime,
		PickupLocation: b.PickupLocation,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
