package reviews

import (
	"context"
	"errors"

	"rently/internal/vehicles"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotReviewOwner = errors.New("review does not belong to owner")

type Service interface {
	CreateReview(ctx context.Context, req *CreateReviewRequest) (*ReviewResponse, error)
	RespondToReview(ctx context.Context, ownerID, reviewID uuid.UUID, req *RespondToReviewRequest) (*ReviewResponse, error)
}

type service struct {
	repo        Repository
	vehicleRepo vehicles.Repository
	logger      *logger.Logger
}

func NewService(repo Repository, vehicleRepo vehicles.Repository, log *logger.Logger) Service {
	return &service{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		logger:      log,
	}
}

func (s *service) CreateReview(ctx context.Context, req *CreateReviewRequest) (*ReviewResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, vehicles.ErrVehicleNotFound
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	review := &VehicleReview{
		VehicleID:  vehicle.ID,
		OwnerID:    vehicle.OwnerID,
		CustomerID: req.CustomerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}

	resp := toReviewResponse(review)
	return &resp, nil
}

func (s *service) RespondToReview(ctx context.Context, ownerID, reviewID uuid.UUID, req *RespondToReviewRequest) (*ReviewResponse, error) {
	review, err := s.repo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.OwnerID != ownerID {
		return nil, ErrNotReviewOwner
	}

	if err := s.repo.UpdateResponse(ctx, reviewID, req.Response); err != nil {
		return nil, err
	}

	review.OwnerResponse = req.Response
	resp := toReviewResponse(review)
	return &resp, nil
}
