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

type BookingHandler struct {
	bookingService service.BookingService
	validate       *validator.Validate
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		validate:       validator.New(),
	}
}

func (h *BookingHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/bookings", h.CreateBooking)
	r.Put("/bookings/{id}/cancel", h.CancelBooking)
}

// POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	booking, err := h.bookingService.BookTrip(r.Context(), user, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, booking.ToResponse())
}

// PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	// A malformed id cannot name any booking, so it is a 404, not a 500
	// from the uuid column rejecting it.
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		handleError(w, apperrors.NotFound("booking"))
		return
	}

	booking, err := h.bookingService.CancelBooking(r.Context(), user, id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "booking cancelled",
		"booking": booking.ToResponse(),
	})
}
