package owners

import (
	"rently/internal/shared/config"
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles owner auth routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new owners router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all owner auth routes
func (ownerRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", ownerRouter.controller.Register)
		auth.POST("/login", ownerRouter.controller.Login)
		auth.POST("/refresh", ownerRouter.controller.RefreshToken)
		auth.POST("/logout", ownerRouter.controller.Logout)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(middleware.JWTAuthWithConfig(ownerRouter.config))
		{
			protected.PUT("/change-password", ownerRouter.controller.ChangePassword)
			protected.GET("/me", ownerRouter.controller.GetMe)
		}
	}
}
