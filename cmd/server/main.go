package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"taxiq/internal/app"
	"taxiq/internal/config"
	"taxiq/internal/handler"
	internalRedis "taxiq/internal/redis"
	"taxiq/internal/repository/postgres"
	"taxiq/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Repositories.
	customerRepo := postgres.NewCustomerRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	ticketRepo := postgres.NewTicketRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Services.
	authService := service.NewAuthService(customerRepo, driverRepo,
		cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword)
	rideService := service.NewRideService(rideRepo, customerRepo, driverRepo, lockStore, cacheStore, service.NewRandomFareEstimator())
	driverService := service.NewDriverService(driverRepo, cacheStore)
	ratingService := service.NewRatingService(ratingRepo, driverRepo, rideRepo)
	paymentService := service.NewPaymentService(db, paymentRepo, rideRepo, driverRepo, cacheStore)
	queueService := service.NewQueueService(ticketRepo, locationRepo, categoryRepo, customerRepo)
	reportService := service.NewReportService(reportRepo, cacheStore)

	// Handlers.
	customerHandler := handler.NewCustomerHandler(authService, customerRepo)
	driverHandler := handler.NewDriverHandler(authService, driverService)
	rideHandler := handler.NewRideHandler(rideService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	queueHandler := handler.NewQueueHandler(queueService)
	refDataHandler := handler.NewRefDataHandler(locationRepo, categoryRepo)
	reportHandler := handler.NewReportHandler(reportService)
	adminHandler := handler.NewAdminHandler(authService)

	router := app.NewRouter(app.RouterDeps{
		AuthService:     authService,
		CustomerHandler: customerHandler,
		DriverHandler:   driverHandler,
		RideHandler:     rideHandler,
		RatingHandler:   ratingHandler,
		PaymentHandler:  paymentHandler,
		QueueHandler:    queueHandler,
		RefDataHandler:  refDataHandler,
		ReportHandler:   reportHandler,
		AdminHandler:    adminHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
