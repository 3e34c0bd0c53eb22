package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/middleware"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/service"
	"github.com/aditya/go-ridepool/pkg/utils"
)

type TripHandler struct {
	tripService    service.TripService
	bookingService service.BookingService
	validate       *validator.Validate
}

func NewTripHandler(tripService service.TripService, bookingService service.BookingService) *TripHandler {
	return &TripHandler{
		tripService:    tripService,
		bookingService: bookingService,
		validate:       validator.New(),
	}
}

func (h *TripHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/trips", h.ListTrips)
}

func (h *TripHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/trips", h.CreateTrip)
	r.Get("/my-trips", h.MyTrips)
	r.Put("/trips/{id}/complete", h.CompleteTrip)
}

// GET /api/trips — the public marketplace view.
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := h.tripService.ListActiveTrips(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, trips)
}

// POST /api/trips
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	trip, err := h.tripService.CreateTrip(r.Context(), user, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, trip.ToResponse())
}

// GET /api/my-trips — trips for drivers, bookings for passengers.
func (h *TripHandler) MyTrips(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	if user.IsDriver() {
		trips, err := h.tripService.ListByDriver(r.Context(), user.ID)
		if err != nil {
			handleError(w, err)
			return
		}
		responses := make([]*models.TripResponse, 0, len(trips))
		for i := range trips {
			responses = append(responses, trips[i].ToResponse())
		}
		utils.JSON(w, http.StatusOK, responses)
		return
	}

	bookings, err := h.bookingService.ListByPassenger(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}
	responses := make([]*models.BookingResponse, 0, len(bookings))
	for i := range bookings {
		bookings[i].Passenger = user
		responses = append(responses, bookings[i].ToResponse())
	}
	utils.JSON(w, http.StatusOK, responses)
}

// PUT /api/trips/{id}/complete
func (h *TripHandler) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		handleError(w, apperrors.NotFound("trip"))
		return
	}

	trip, err := h.tripService.CompleteTrip(r.Context(), user, id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "trip completed",
		"trip":    trip.ToResponse(),
	})
}
