package reviews

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

func (c *Controller) CreateReview(ctx *gin.Context) {
	var req CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.CreateReview(ctx.Request.Context(), &req)
	if err != nil {
		switch err {
		case vehicles.ErrVehicleNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Vehicle not found", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create review", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Review created successfully", resp, nil)
}

func (c *Controller) RespondToReview(ctx *gin.Context) {
	raw, exists := ctx.Get("owner_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}
	str, ok := raw.(string)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}
	ownerID, err := uuid.Parse(str)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	reviewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid review ID", nil, nil)
		return
	}

	var req RespondToReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.RespondToReview(ctx.Request.Context(), ownerID, reviewID, &req)
	if err != nil {
		switch err {
		case ErrReviewNotFound:
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Review not found", nil, nil)
		case ErrNotReviewOwner:
			response.RespondJSON(ctx, "error", http.StatusForbidden, "Review does not belong to you", nil, nil)
		default:
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to respond to review", nil, nil)
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Response saved successfully", resp, nil)
}
