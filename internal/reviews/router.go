package reviews

import (
	"rently/internal/shared/config"
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles review routes
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

// SetupRoutes registers review routes. Creation comes from the customer flow;
// responding is owner-only.
func (reviewRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	{
		reviews.POST("", reviewRouter.controller.CreateReview)

		protected := reviews.Group("")
		protected.Use(middleware.JWTAuthWithConfig(reviewRouter.config))
		{
			protected.PUT("/:id/response", reviewRouter.controller.RespondToReview)
		}
	}
}
