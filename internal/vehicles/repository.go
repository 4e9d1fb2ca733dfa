package vehicles

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type Repository interface {
	Create(ctx context.Context, vehicle *Vehicle) error
	GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Vehicle, error)
	Update(ctx context.Context, vehicle *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, vehicle *Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Vehicle, error) {
	var vehicle Vehicle
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Vehicle, error) {
	var fleet []Vehicle
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&fleet).Error
	if err != nil {
		return nil, err
	}
	return fleet, nil
}

func (r *repository) Update(ctx context.Context, vehicle *Vehicle) error {
	result := r.db.WithContext(ctx).Save(vehicle)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (r *repository) CountByOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Vehicle{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	return count, err
}
