package vehicles

import (
	"context"
	"errors"

	"rently/internal/shared/utils/constants"
	"rently/pkg/cache"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotVehicleOwner = errors.New("vehicle does not belong to owner")

type Service interface {
	CreateVehicle(ctx context.Context, ownerID uuid.UUID, req *CreateVehicleRequest) (*VehicleResponse, error)
	GetVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*VehicleResponse, error)
	GetFleet(ctx context.Context, ownerID uuid.UUID) ([]VehicleResponse, error)
	UpdateVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID, req *UpdateVehicleRequest) (*VehicleResponse, error)
	DeleteVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	logger       *logger.Logger
}

func NewService(repo Repository, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		cacheService: cacheService,
		logger:       log,
	}
}

func (s *service) CreateVehicle(ctx context.Context, ownerID uuid.UUID, req *CreateVehicleRequest) (*VehicleResponse, error) {
	vehicle := &Vehicle{
		OwnerID:      ownerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		DailyRate:    req.DailyRate,
		Location:     req.Location,
		Status:       StatusActive,
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}

	s.invalidateFleetCache(ctx, ownerID)

	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

func (s *service) GetVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*VehicleResponse, error) {
	cacheKey := constants.CACHE_KEY_VEHICLE_DETAIL + vehicleID.String()

	var cached VehicleResponse
	if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
		if cached.OwnerID != ownerID.String() {
			return nil, ErrNotVehicleOwner
		}
		return &cached, nil
	}

	vehicle, err := s.repo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, ErrNotVehicleOwner
	}

	resp := toVehicleResponse(vehicle)
	if err := s.cacheService.Set(ctx, cacheKey, resp, constants.TTL_VEHICLE_DETAIL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache vehicle detail", "vehicle_id", vehicleID.String(), "error", err.Error())
	}

	return &resp, nil
}

func (s *service) GetFleet(ctx context.Context, ownerID uuid.UUID) ([]VehicleResponse, error) {
	cacheKey := constants.CACHE_KEY_VEHICLES_BY_OWNER + ownerID.String()

	var cached []VehicleResponse
	if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	fleet, err := s.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	responses := make([]VehicleResponse, 0, len(fleet))
	for i := range fleet {
		responses = append(responses, toVehicleResponse(&fleet[i]))
	}

	if err := s.cacheService.Set(ctx, cacheKey, responses, constants.TTL_VEHICLE_LIST); err != nil {
		s.logger.WarnContext(ctx, "failed to cache fleet listing", "owner_id", ownerID.String(), "error", err.Error())
	}

	return responses, nil
}

func (s *service) UpdateVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID, req *UpdateVehicleRequest) (*VehicleResponse, error) {
	vehicle, err := s.repo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.OwnerID != ownerID {
		return nil, ErrNotVehicleOwner
	}

	if req.Make != nil {
		vehicle.Make = *req.Make
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.DailyRate != nil {
		vehicle.DailyRate = *req.DailyRate
	}
	if req.Location != nil {
		vehicle.Location = *req.Location
	}
	if req.Status != nil {
		vehicle.Status = VehicleStatus(*req.Status)
	}

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}

	s.invalidateFleetCache(ctx, ownerID)
	s.cacheService.Delete(ctx, constants.CACHE_KEY_VEHICLE_DETAIL+vehicleID.String())

	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

func (s *service) DeleteVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) error {
	vehicle, err := s.repo.GetByID(ctx, vehicleID)
	if err != nil {
		return err
	}
	if vehicle.OwnerID != ownerID {
		return ErrNotVehicleOwner
	}

	if err := s.repo.Delete(ctx, vehicleID); err != nil {
		return err
	}

	s.invalidateFleetCache(ctx, ownerID)
	s.cacheService.Delete(ctx, constants.CACHE_KEY_VEHICLE_DETAIL+vehicleID.String())

	return nil
}

func (s *service) invalidateFleetCache(ctx context.Context, ownerID uuid.UUID) {
	key := constants.CACHE_KEY_VEHICLES_BY_OWNER + ownerID.String()
	if err := s.cacheService.Delete(ctx, key); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate fleet cache", "owner_id", ownerID.String(), "error", err.Error())
	}
}
