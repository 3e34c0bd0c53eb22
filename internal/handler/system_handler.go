package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aditya/go-ridepool/internal/database"
	"github.com/aditya/go-ridepool/internal/repository"
	"github.com/aditya/go-ridepool/pkg/utils"
)

// SystemHandler serves the health and platform-info endpoints.
type SystemHandler struct {
	db          *database.PostgresDB
	redis       *database.RedisDB
	userRepo    repository.UserRepository
	tripRepo    repository.TripRepository
	bookingRepo repository.BookingRepository
	requestRepo repository.RideRequestRepository
}

func NewSystemHandler(
	db *database.PostgresDB,
	redis *database.RedisDB,
	userRepo repository.UserRepository,
	tripRepo repository.TripRepository,
	bookingRepo repository.BookingRepository,
	requestRepo repository.RideRequestRepository,
) *SystemHandler {
	return &SystemHandler{
		db:          db,
		redis:       redis,
		userRepo:    userRepo,
		tripRepo:    tripRepo,
		bookingRepo: bookingRepo,
		requestRepo: requestRepo,
	}
}

func (h *SystemHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/info", h.Info)
}

// GET /api/health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	services := map[string]string{
		"database": "up",
		"redis":    "up",
	}
	status := http.StatusOK

	if err := h.db.Health(ctx); err != nil {
		services["database"] = "down"
		status = http.StatusServiceUnavailable
	}
	if err := h.redis.Health(ctx); err != nil {
		services["redis"] = "down"
		status = http.StatusServiceUnavailable
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	utils.JSON(w, status, map[string]interface{}{
		"status":   state,
		"services": services,
	})
}

// GET /api/info
func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.userRepo.Count(ctx)
	if err != nil {
		handleError(w, err)
		return
	}
	trips, err := h.tripRepo.Count(ctx)
	if err != nil {
		handleError(w, err)
		return
	}
	bookings, err := h.bookingRepo.Count(ctx)
	if err != nil {
		handleError(w, err)
		return
	}
	requests, err := h.requestRepo.Count(ctx)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"users":         users,
		"trips":         trips,
		"bookings":      bookings,
		"ride_requests": requests,
	})
}
