package vehicles

import (
	"time"

	"github.com/google/uuid"
)

type VehicleStatus string

const (
	StatusActive   VehicleStatus = "active"
	StatusInactive VehicleStatus = "inactive"
)

func IsValidStatus(status string) bool {
	switch status {
	case string(StatusActive), string(StatusInactive):
		return true
	default:
		return false
	}
}

// Vehicle is one rentable unit in an owner's fleet. Utilization and revenue
// share reports are computed across the owner's active vehicles.
type Vehicle struct {
	ID           uuid.UUID     `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID      uuid.UUID     `json:"owner_id" gorm:"type:uuid;not null;index"`
	Make         string        `json:"make" gorm:"not null;size:100"`
	Model        string        `json:"model" gorm:"not null;size:100"`
	Year         int           `json:"year" gorm:"not null"`
	LicensePlate string        `json:"license_plate" gorm:"uniqueIndex;not null;size:20"`
	DailyRate    float64       `json:"daily_rate" gorm:"not null;check:daily_rate >= 0"`
	Location     string        `json:"location" gorm:"size:255"`
	Status       VehicleStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedAt    time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// DisplayName is the label used in reports and chart legends.
func (v *Vehicle) DisplayName() string {
	return v.Make + " " + v.Model
}

type VehicleResponse struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"owner_id"`
	Make         string        `json:"make"`
	Model        string        `json:"model"`
	Year         int           `json:"year"`
	LicensePlate string        `json:"license_plate"`
	DailyRate    float64       `json:"daily_rate"`
	Location     string        `json:"location"`
	Status       VehicleStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

type CreateVehicleRequest struct {
	Make         string  `json:"make" validate:"required,min=2,max=100"`
	Model        string  `json:"model" validate:"required,min=1,max=100"`
	Year         int     `json:"year" validate:"required,min=1980,max=2100"`
	LicensePlate string  `json:"license_plate" validate:"required,min=2,max=20"`
	DailyRate    float64 `json:"daily_rate" validate:"required,gt=0"`
	Location     string  `json:"location" validate:"max=255"`
}

type UpdateVehicleRequest struct {
	Make      *string  `json:"make,omitempty" validate:"omitempty,min=2,max=100"`
	Model     *string  `json:"model,omitempty" validate:"omitempty,min=1,max=100"`
	Year      *int     `json:"year,omitempty" validate:"omitempty,min=1980,max=2100"`
	DailyRate *float64 `json:"daily_rate,omitempty" validate:"omitempty,gt=0"`
	Location  *string  `json:"location,omitempty" validate:"omitempty,max=255"`
	Status    *string  `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

func toVehicleResponse(v *Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID.String(),
		OwnerID:      v.OwnerID.String(),
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		DailyRate:    v.DailyRate,
		Location:     v.Location,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
