package bookings

import (
	"net/http"

	"rently/internal/shared/utils/response"
	"rently/internal/vehicles"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func ownerIDFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("owner_id")
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.CreateBooking(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case vehicles.ErrVehicleNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Vehicle not found", nil, nil)
		case ErrVehicleInactive:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Vehicle is not available for booking", nil, nil)
		case ErrInvalidDateRange:
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Dropoff date must be after pickup date", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", resp, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	resp, err := c.service.GetBooking(ctx.Request.Context(), ownerID, bookingID)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case ErrNotBookingOwner:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking does not belong to you", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch booking", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", resp, nil)
}

func (c *Controller) ListBookings(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	if query.Status != "" && !IsValidStatus(query.Status) {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking status", nil, nil)
		return
	}

	bookings, total, err := c.service.ListBookings(ctx.Request.Context(), ownerID, &query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch bookings", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    query.Limit,
		"offset":   query.Offset,
	}, nil)
}

func (c *Controller) UpdateBookingStatus(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	var req UpdateBookingStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.UpdateBookingStatus(ctx.Request.Context(), ownerID, bookingID, &req)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case ErrNotBookingOwner:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Booking does not belong to you", nil, nil)
		case ErrInvalidTransition:
			response.RespondJSON(ctx, "error", http.StatusConflict, "Invalid status transition", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update booking status", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking status updated successfully", resp, nil)
}
