package reviews

import (
	"time"

	"github.com/google/uuid"
)

// VehicleReview is customer feedback on one vehicle. Average ratings feed the
// owner report summary.
type VehicleReview struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	VehicleID     uuid.UUID `json:"vehicle_id" gorm:"type:uuid;not null;index"`
	OwnerID       uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	CustomerID    string    `json:"customer_id" gorm:"size:100"`
	Rating        int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment       string    `json:"comment" gorm:"type:text"`
	OwnerResponse string    `json:"owner_response" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type ReviewResponse struct {
	ID            string    `json:"id"`
	VehicleID     string    `json:"vehicle_id"`
	OwnerID       string    `json:"owner_id"`
	CustomerID    string    `json:"customer_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	OwnerResponse string    `json:"owner_response"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateReviewRequest struct {
	VehicleID  string `json:"vehicle_id" validate:"required,uuid"`
	CustomerID string `json:"customer_id" validate:"required,min=1,max=100"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=2000"`
}

type RespondToReviewRequest struct {
	Response string `json:"response" validate:"required,min=1,max=2000"`
}

func toReviewResponse(r *VehicleReview) ReviewResponse {
	return ReviewResponse{
		ID:            r.ID.String(),
		VehicleID:     r.VehicleID.String(),
		OwnerID:       r.OwnerID.String(),
		CustomerID:    r.CustomerID,
		Rating:        r.Rating,
		Comment:       r.Comment,
		OwnerResponse: r.OwnerResponse,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
