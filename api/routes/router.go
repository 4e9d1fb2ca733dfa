// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"rently/internal/analytics"
	"rently/internal/bookingevents"
	"rently/internal/bookings"
	"rently/internal/owners"
	"rently/internal/reviews"
	"rently/internal/shared/config"
	"rently/internal/shared/database"
	"rently/internal/vehicles"
	"rently/pkg/cache"
	"rently/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer bookingevents.Producer
	logger   *logger.Logger

	// Shared across modules
	cacheService cache.Service
	vehicleRepo  vehicles.Repository
	bookingRepo  bookings.Repository
	reviewRepo   reviews.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer bookingevents.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
		logger:   logger.GetDefault(),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Shared dependencies
	r.cacheService = cache.NewService(r.db.GetRedis())
	r.vehicleRepo = vehicles.NewRepository(r.db.GetPostgreSQL())
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())
	r.reviewRepo = reviews.NewRepository(r.db.GetPostgreSQL())

	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// Swagger UI
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupOwnerRoutes(api)
		r.setupVehicleRoutes(api)
		r.setupBookingRoutes(api)
		r.setupReviewRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		// Perform health checks
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "rently-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "rently-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupOwnerRoutes configures owner authentication routes
func (r *Router) setupOwnerRoutes(rg *gin.RouterGroup) {
	ownerRepo := owners.NewRepository(r.db.GetPostgreSQL())
	ownerService := owners.NewService(ownerRepo, r.config, r.logger)
	ownerController := owners.NewController(ownerService)
	ownerRouter := owners.NewRouter(ownerController, r.config)

	ownerRouter.SetupRoutes(rg)
}

// setupVehicleRoutes configures fleet management routes
func (r *Router) setupVehicleRoutes(rg *gin.RouterGroup) {
	vehicleService := vehicles.NewService(r.vehicleRepo, r.cacheService, r.logger)
	vehicleController := vehicles.NewController(vehicleService)
	vehicleRouter := vehicles.NewRouter(vehicleController, r.config)

	vehicleRouter.SetupRoutes(rg)
}

// setupBookingRoutes configures booking routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingService := bookings.NewService(r.bookingRepo, r.vehicleRepo, r.producer, r.cacheService, r.logger)
	bookingController := bookings.NewController(bookingService)
	bookingRouter := bookings.NewRouter(bookingController, r.config)

	bookingRouter.SetupRoutes(rg)
}

// setupReviewRoutes configures review routes
func (r *Router) setupReviewRoutes(rg *gin.RouterGroup) {
	reviewService := reviews.NewService(r.reviewRepo, r.vehicleRepo, r.logger)
	reviewController := reviews.NewController(reviewService)
	reviewRouter := reviews.NewRouter(reviewController, r.config)

	reviewRouter.SetupRoutes(rg)
}

// setupAnalyticsRoutes configures owner analytics routes
func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	fetcher := analytics.NewFetcher(r.vehicleRepo, r.bookingRepo, r.reviewRepo, r.config.Analytics.InQueryLimit, r.logger)
	analyticsService := analytics.NewService(fetcher, r.cacheService, r.config, r.logger)
	analyticsController := analytics.NewController(analyticsService)
	analyticsRouter := analytics.NewRouter(analyticsController, r.config)

	analyticsRouter.SetupRoutes(rg)
}
