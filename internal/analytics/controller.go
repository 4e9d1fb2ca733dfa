package analytics

import (
	"fmt"
	"net/http"
	"time"

	"rently/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
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

func parseReportQuery(ctx *gin.Context) (Period, uuid.UUID, error) {
	period, err := ParsePeriod(ctx.Query("period"))
	if err != nil {
		return "", uuid.Nil, err
	}

	vehicleFilter := uuid.Nil
	if raw := ctx.Query("vehicle"); raw != "" && raw != "all" {
		vehicleFilter, err = uuid.Parse(raw)
		if err != nil {
			return "", uuid.Nil, fmt.Errorf("invalid vehicle filter")
		}
	}

	return period, vehicleFilter, nil
}

// GetOwnerReport handles GET /analytics/owner/report
func (c *Controller) GetOwnerReport(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	period, vehicleFilter, err := parseReportQuery(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	refresh := ctx.Query("refresh") == "true"

	report, err := c.service.GetOwnerReport(ctx.Request.Context(), ownerID, period, vehicleFilter, refresh)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to build report", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Report generated successfully", report, nil)
}

// GetOwnerCharts handles GET /analytics/owner/charts
func (c *Controller) GetOwnerCharts(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	period, vehicleFilter, err := parseReportQuery(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	charts, err := c.service.GetOwnerCharts(ctx.Request.Context(), ownerID, period, vehicleFilter)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to render charts", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Charts rendered successfully", charts, nil)
}

// ExportEarnings handles GET /analytics/owner/earnings/export
func (c *Controller) ExportEarnings(ctx *gin.Context) {
	ownerID, ok := ownerIDFromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Owner not authenticated", nil, nil)
		return
	}

	period, _, err := parseReportQuery(ctx)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	csvContent, err := c.service.ExportMonthlyEarnings(ctx.Request.Context(), ownerID, period)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to export earnings", nil, nil)
		return
	}

	filename := fmt.Sprintf("earnings-%s-%s.csv", period, time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, "text/csv", []byte(csvContent))
}
