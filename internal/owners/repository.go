package owners

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateOwner(ctx context.Context, owner *Owner) error
	GetOwnerByEmail(ctx context.Context, email string) (*Owner, error)
	GetOwnerByID(ctx context.Context, id string) (*Owner, error)
	UpdateOwnerPassword(ctx context.Context, ownerID string, hashedPassword string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{
		db: db,
	}
}

func (r *repository) CreateOwner(ctx context.Context, owner *Owner) error {
	if err := r.db.WithContext(ctx).Create(owner).Error; err != nil {
		return err
	}
	return nil
}

func (r *repository) GetOwnerByEmail(ctx context.Context, email string) (*Owner, error) {
	var owner Owner
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repository) GetOwnerByID(ctx context.Context, id string) (*Owner, error) {
	var owner Owner
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return &owner, nil
}

func (r *repository) UpdateOwnerPassword(ctx context.Context, ownerID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&Owner{}).
		Where("id = ?", ownerID).
		Update("password", hashedPassword)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOwnerNotFound
	}

	return nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Owner{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
