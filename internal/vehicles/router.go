package vehicles

import (
	"rently/internal/shared/config"
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles fleet management routes
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

// SetupRoutes registers all fleet routes. All of them require authentication.
func (vehicleRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	fleet := rg.Group("/vehicles")
	fleet.Use(middleware.JWTAuthWithConfig(vehicleRouter.config))
	{
		fleet.POST("", vehicleRouter.controller.CreateVehicle)
		fleet.GET("", vehicleRouter.controller.GetFleet)
		fleet.GET("/:id", vehicleRouter.controller.GetVehicle)
		fleet.PUT("/:id", vehicleRouter.controller.UpdateVehicle)
		fleet.DELETE("/:id", vehicleRouter.controller.DeleteVehicle)
	}
}
