package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	Create(ctx context.Context, booking *VehicleBooking) error
	GetByID(ctx context.Context, id uuid.UUID) (*VehicleBooking, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID, query *BookingListQuery) ([]VehicleBooking, int64, error)
	GetByVehicleIDs(ctx context.Context, vehicleIDs []uuid.UUID) ([]VehicleBooking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *VehicleBooking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*VehicleBooking, error) {
	var booking VehicleBooking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID, query *BookingListQuery) ([]VehicleBooking, int64, error) {
	db := r.db.WithContext(ctx).Model(&VehicleBooking{}).Where("owner_id = ?", ownerID)

	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if query.VehicleID != "" {
		db = db.Where("vehicle_id = ?", query.VehicleID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []VehicleBooking
	err := db.Order("created_at DESC").
		Limit(query.Limit).
		Offset(query.Offset).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetByVehicleIDs loads every booking for the given vehicles. The caller is
// responsible for chunking the ID list; this method issues a single IN query.
func (r *repository) GetByVehicleIDs(ctx context.Context, vehicleIDs []uuid.UUID) ([]VehicleBooking, error) {
	if len(vehicleIDs) == 0 {
		return []VehicleBooking{}, nil
	}

	var bookings []VehicleBooking
	err := r.db.WithContext(ctx).
		Where("vehicle_id IN ?", vehicleIDs).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status BookingStatus) error {
	result := r.db.WithContext(ctx).Model(&VehicleBooking{}).
		Where("id = ?", id).
		Update("status", status)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}
