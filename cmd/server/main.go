package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"

	"github.com/aditya/go-ridepool/internal/auth"
	"github.com/aditya/go-ridepool/internal/cache"
	"github.com/aditya/go-ridepool/internal/config"
	"github.com/aditya/go-ridepool/internal/database"
	"github.com/aditya/go-ridepool/internal/handler"
	"github.com/aditya/go-ridepool/internal/logger"
	"github.com/aditya/go-ridepool/internal/middleware"
	"github.com/aditya/go-ridepool/internal/repository"
	"github.com/aditya/go-ridepool/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Setup(cfg.LogFile, cfg.LogLevel)

	// Initialize New Relic (optional)
	var nrApp *newrelic.Application
	if cfg.NewRelicEnabled && cfg.NewRelicLicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicAppName),
			newrelic.ConfigLicense(cfg.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
			newrelic.ConfigInfoLogger(os.Stdout),
		)
		if err != nil {
			log.Warnf("Failed to initialize New Relic: %v", err)
		} else if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Warnf("New Relic connection timeout: %v", err)
		} else {
			log.Info("New Relic connected")
		}
	}

	// Initialize PostgreSQL
	db, err := database.NewPostgres(
		cfg.DatabaseURL,
		cfg.DBMaxConnections,
		cfg.DBMaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()
	log.Info("Connected to PostgreSQL")

	// Initialize Redis
	redis, err := database.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()
	log.Info("Connected to Redis")

	// Initialize cache
	marketplace := cache.NewMarketplaceCache(redis.Client, time.Duration(cfg.TripCacheTTLSeconds)*time.Second)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	tripRepo := repository.NewTripRepository(db.DB)
	bookingRepo := repository.NewBookingRepository(db.DB)
	requestRepo := repository.NewRideRequestRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenTTLDays)*24*time.Hour)
	authService := service.NewAuthService(userRepo, tokens)
	tripService := service.NewTripService(tripRepo, marketplace)
	bookingService := service.NewBookingService(bookingRepo, marketplace)
	requestService := service.NewRideRequestService(requestRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	tripHandler := handler.NewTripHandler(tripService, bookingService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	requestHandler := handler.NewRideRequestHandler(requestService)
	messageHandler := handler.NewMessageHandler(messageService)
	systemHandler := handler.NewSystemHandler(db, redis, userRepo, tripRepo, bookingRepo, requestRepo)

	authenticator := middleware.NewAuthenticator(authService)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// New Relic middleware
	if nrApp != nil {
		r.Use(middleware.NewRelicMiddleware(nrApp))
	}

	// Rate limiter
	rateLimiter := middleware.NewRateLimiter(redis.Client, cfg.RateLimitPerMinute, time.Minute)
	r.Use(rateLimiter.Handler)

	// Idempotency middleware
	idempotencyMw := middleware.NewIdempotencyMiddleware(redis.Client)
	r.Use(idempotencyMw.Handler)

	r.NotFound(handler.NotFoundHandler)
	r.MethodNotAllowed(handler.MethodNotAllowedHandler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Public
		systemHandler.RegisterPublicRoutes(r)
		authHandler.RegisterPublicRoutes(r)
		tripHandler.RegisterPublicRoutes(r)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(authenticator.RequireAuth)
			authHandler.RegisterProtectedRoutes(r)
			tripHandler.RegisterProtectedRoutes(r)
			bookingHandler.RegisterProtectedRoutes(r)
			requestHandler.RegisterProtectedRoutes(r)
			messageHandler.RegisterProtectedRoutes(r)
		})
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Errorf("Server shutdown error: %v", err)
		}
	}()

	// Start server
	log.Infof("Server starting on port %s", cfg.Port)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Info("Server stopped gracefully")
}
