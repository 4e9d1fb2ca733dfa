package analytics

import (
	"rently/internal/shared/config"
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles analytics routes
type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers owner analytics routes. Every endpoint is scoped to
// the authenticated owner.
func (analyticsRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	owner := rg.Group("/analytics/owner")
	owner.Use(middleware.JWTAuthWithConfig(analyticsRouter.config))
	{
		owner.GET("/report", analyticsRouter.controller.GetOwnerReport)
		owner.GET("/charts", analyticsRouter.controller.GetOwnerCharts)
		owner.GET("/earnings/export", analyticsRouter.controller.ExportEarnings)
	}
}
