package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReviewNotFound = errors.New("review not found")

type Repository interface {
	Create(ctx context.Context, review *VehicleReview) error
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleReview, error)
	GetByVehicleIDs(ctx context.Context, vehicleIDs []uuid.UUID) ([]VehicleReview, error)
	UpdateResponse(ctx context.Context, id uuid.UUID, ownerResponse string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, review *VehicleReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*VehicleReview, error) {
	var review VehicleReview
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// GetByVehicleIDs loads reviews for the given vehicles with a single IN
// query. The caller chunks the ID list.
func (r *repository) GetByVehicleIDs(ctx context.Context, vehicleIDs []uuid.UUID) ([]VehicleReview, error) {
	if len(vehicleIDs) == 0 {
		return []VehicleReview{}, nil
	}

	var reviews []VehicleReview
	err := r.db.WithContext(ctx).
		Where("vehicle_id IN ?", vehicleIDs).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repository) UpdateResponse(ctx context.Context, id uuid.UUID, ownerResponse string) error {
	result := r.db.WithContext(ctx).Model(&VehicleReview{}).
		Where("id = ?", id).
		Update("owner_response", ownerResponse)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}
