package bookings

import (
	"context"
	"errors"
	"time"

	"rently/internal/bookingevents"
	"rently/internal/shared/utils/constants"
	"rently/internal/vehicles"
	"rently/pkg/cache"
	"rently/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidDateRange  = errors.New("dropoff date must be after pickup date")
	ErrNotBookingOwner   = errors.New("booking does not belong to owner")
	ErrVehicleInactive   = errors.New("vehicle is not available for booking")
)

type Service interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error)
	GetBooking(ctx context.Context, ownerID, bookingID uuid.UUID) (*BookingResponse, error)
	ListBookings(ctx context.Context, ownerID uuid.UUID, query *BookingListQuery) ([]BookingResponse, int64, error)
	UpdateBookingStatus(ctx context.Context, ownerID, bookingID uuid.UUID, req *UpdateBookingStatusRequest) (*BookingResponse, error)
}

type service struct {
	repo         Repository
	vehicleRepo  vehicles.Repository
	producer     bookingevents.Producer
	cacheService cache.Service
	logger       *logger.Logger
}

func NewService(repo Repository, vehicleRepo vehicles.Repository, producer bookingevents.Producer, cacheService cache.Service, log *logger.Logger) Service {
	return &service{
		repo:         repo,
		vehicleRepo:  vehicleRepo,
		producer:     producer,
		cacheService: cacheService,
		logger:       log,
	}
}

func (s *service) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*BookingResponse, error) {
	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, vehicles.ErrVehicleNotFound
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != vehicles.StatusActive {
		return nil, ErrVehicleInactive
	}

	pickupDate, err := time.Parse("2006-01-02", req.PickupDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	dropoffDate, err := time.Parse("2006-01-02", req.DropoffDate)
	if err != nil {
		return nil, ErrInvalidDateRange
	}
	if !dropoffDate.After(pickupDate) {
		return nil, ErrInvalidDateRange
	}

	booking := &VehicleBooking{
		VehicleID:      vehicle.ID,
		OwnerID:        vehicle.OwnerID,
		CustomerID:     req.CustomerID,
		CustomerEmail:  req.CustomerEmail,
		Status:         StatusPending,
		TotalAmount:    req.TotalAmount,
		PickupDate:     pickupDate,
		DropoffDate:    dropoffDate,
		PickupTime:     req.PickupTime,
		PickupLocation: req.PickupLocation,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.LogBookingCreated(ctx, booking.ID.String(), booking.VehicleID.String())

	s.publishEvent(ctx, bookingevents.EventBookingCreated, booking)
	s.invalidateOwnerReports(ctx, booking.OwnerID)

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *service) GetBooking(ctx context.Context, ownerID, bookingID uuid.UUID) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, ErrNotBookingOwner
	}

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *service) ListBookings(ctx context.Context, ownerID uuid.UUID, query *BookingListQuery) ([]BookingResponse, int64, error) {
	if query.Limit <= 0 || query.Limit > 200 {
		query.Limit = 50
	}
	if query.Offset < 0 {
		query.Offset = 0
	}

	bookings, total, err := s.repo.GetByOwnerID(ctx, ownerID, query)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		responses = append(responses, toBookingResponse(&bookings[i]))
	}
	return responses, total, nil
}

func (s *service) UpdateBookingStatus(ctx context.Context, ownerID, bookingID uuid.UUID, req *UpdateBookingStatusRequest) (*BookingResponse, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, ErrNotBookingOwner
	}

	newStatus := BookingStatus(req.Status)
	if !CanTransition(booking.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}

	s.logger.LogBookingStatusChanged(ctx, bookingID.String(), string(booking.Status), string(newStatus))

	booking.Status = newStatus
	s.publishEvent(ctx, bookingevents.EventBookingStatusChanged, booking)
	s.invalidateOwnerReports(ctx, booking.OwnerID)

	resp := toBookingResponse(booking)
	return &resp, nil
}

func (s *service) publishEvent(ctx context.Context, eventType bookingevents.EventType, booking *VehicleBooking) {
	event := &bookingevents.BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID.String(),
		VehicleID:  booking.VehicleID.String(),
		OwnerID:    booking.OwnerID.String(),
		Status:     string(booking.Status),
		Amount:     booking.TotalAmount,
		OccurredAt: time.Now(),
	}

	if err := s.producer.PublishBookingEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish booking event",
			"booking_id", booking.ID.String(), "type", string(eventType), "error", err.Error())
	}
}

func (s *service) invalidateOwnerReports(ctx context.Context, ownerID uuid.UUID) {
	pattern := constants.BuildOwnerAnalyticsPattern(ownerID.String())
	if err := s.cacheService.DeletePattern(ctx, pattern); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate owner reports",
			"owner_id", ownerID.String(), "error", err.Error())
	}
}
