package vehicles

import (
	"net/http"

	"rently/internal/shared/utils/response"

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

func (c *Controller) CreateVehicle(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	var req CreateVehicleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.CreateVehicle(ctx.Request.Context(), ownerID, &req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create vehicle", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Vehicle created successfully", resp, nil)
}

func (c *Controller) GetVehicle(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	vehicleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid vehicle ID", nil, nil)
		return
	}

	resp, err := c.service.GetVehicle(ctx.Request.Context(), ownerID, vehicleID)
	if err != nil {
		switch err {
		case ErrVehicleNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Vehicle not found", nil, nil)
		case ErrNotVehicleOwner:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Vehicle does not belong to you", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch vehicle", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Vehicle retrieved successfully", resp, nil)
}

func (c *Controller) GetFleet(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	fleet, err := c.service.GetFleet(ctx.Request.Context(), ownerID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch fleet", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Fleet retrieved successfully", fleet, nil)
}

func (c *Controller) UpdateVehicle(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	vehicleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid vehicle ID", nil, nil)
		return
	}

	var req UpdateVehicleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.UpdateVehicle(ctx.Request.Context(), ownerID, vehicleID, &req)
	if err != nil {
		switch err {
		case ErrVehicleNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Vehicle not found", nil, nil)
		case ErrNotVehicleOwner:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Vehicle does not belong to you", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update vehicle", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Vehicle updated successfully", resp, nil)
}

func (c *Controller) DeleteVehicle(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	vehicleID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid vehicle ID", nil, nil)
		return
	}

	if err := c.service.DeleteVehicle(ctx.Request.Context(), ownerID, vehicleID); err != nil {
		switch err {
		case ErrVehicleNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Vehicle not found", nil, nil)
		case ErrNotVehicleOwner:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Vehicle does not belong to you", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to delete vehicle", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Vehicle deleted successfully", nil, nil)
}
