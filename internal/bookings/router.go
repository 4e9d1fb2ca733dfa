package bookings

import (
	"rently/internal/shared/config"
	"rently/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles booking routes
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

// SetupRoutes registers booking routes. Creation is open to the customer
// checkout flow; everything else is owner-facing and requires a token.
func (bookingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	bookings := rg.Group("/bookings")
	{
		bookings.POST("", bookingRouter.controller.CreateBooking)

		protected := bookings.Group("")
		protected.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
		{
			protected.GET("", bookingRouter.controller.ListBookings)
			protected.GET("/:id", bookingRouter.controller.GetBooking)
			protected.PATCH("/:id/status", bookingRouter.controller.UpdateBookingStatus)
		}
	}
}
