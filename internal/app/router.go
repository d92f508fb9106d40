package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"taxiq/internal/domain"
	"taxiq/internal/handler"
	"taxiq/internal/middleware"
	"taxiq/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthService     *service.AuthService
	CustomerHandler *handler.CustomerHandler
	DriverHandler   *handler.DriverHandler
	RideHandler     *handler.RideHandler
	RatingHandler   *handler.RatingHandler
	PaymentHandler  *handler.PaymentHandler
	QueueHandler    *handler.QueueHandler
	RefDataHandler  *handler.RefDataHandler
	ReportHandler   *handler.ReportHandler
	AdminHandler    *handler.AdminHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	auth := middleware.Auth(deps.AuthService)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Customer routes.
		customers := v1.Group("/customers")
		{
			customers.POST("/register", deps.CustomerHandler.Register)
			customers.POST("/login", deps.CustomerHandler.Login)
			customers.GET("", auth, adminOnly, deps.CustomerHandler.GetAll)
			customers.GET("/:id", auth, deps.CustomerHandler.Get)
			customers.PATCH("/:id", auth, deps.CustomerHandler.Patch)
			customers.DELETE("/:id", auth, deps.CustomerHandler.Delete)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.POST("/login", deps.DriverHandler.Login)
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.GET("/:id", deps.DriverHandler.Get)
			drivers.POST("/:id/status", auth, middleware.RequireRole(domain.RoleDriver, domain.RoleAdmin), deps.DriverHandler.SetStatus)
		}

		// Ride routes.
		rides := v1.Group("/rides", auth)
		{
			rides.POST("", middleware.RequireRole(domain.RoleCustomer, domain.RoleAdmin), deps.RideHandler.Book)
			rides.GET("", deps.RideHandler.GetAll)
			rides.GET("/:id", deps.RideHandler.Get)
			rides.POST("/:id/accept", middleware.RequireRole(domain.RoleDriver, domain.RoleAdmin), deps.RideHandler.Accept)
			rides.POST("/:id/cancel", deps.RideHandler.Cancel)
		}

		// Rating routes.
		v1.POST("/ratings", auth, middleware.RequireRole(domain.RoleCustomer, domain.RoleAdmin), deps.RatingHandler.Submit)

		// Payment routes.
		payments := v1.Group("/payments", auth)
		{
			payments.POST("", middleware.RequireRole(domain.RoleDriver, domain.RoleAdmin), deps.PaymentHandler.Pay)
			payments.GET("/:id", deps.PaymentHandler.Get)
		}

		// Queue routes.
		queue := v1.Group("/queue", auth)
		{
			queue.POST("/tickets", deps.QueueHandler.Obtain)
			queue.GET("/tickets/:id", deps.QueueHandler.Get)
			queue.POST("/next", adminOnly, deps.QueueHandler.ServeNext)
		}

		// Reference data.
		v1.GET("/locations", deps.RefDataHandler.GetLocations)
		v1.POST("/locations", auth, adminOnly, deps.RefDataHandler.CreateLocation)
		v1.GET("/categories", deps.RefDataHandler.GetCategories)
		v1.POST("/categories", auth, adminOnly, deps.RefDataHandler.CreateCategory)

		// Admin login and reports.
		v1.POST("/admin/login", deps.AdminHandler.Login)
		v1.GET("/admin/reports", auth, adminOnly, deps.ReportHandler.Monthly)
	}

	return router
}
