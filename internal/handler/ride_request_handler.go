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

type RideRequestHandler struct {
	requestService service.RideRequestService
	validate       *validator.Validate
}

func NewRideRequestHandler(requestService service.RideRequestService) *RideRequestHandler {
	return &RideRequestHandler{
		requestService: requestService,
		validate:       validator.New(),
	}
}

func (h *RideRequestHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/ride-requests", h.ListRequests)
	r.Post("/ride-requests", h.CreateRequest)
	r.Put("/ride-requests/{id}/cancel", h.CancelRequest)
	r.Put("/ride-requests/{id}/match", h.MatchRequest)
}

// GET /api/ride-requests
func (h *RideRequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	requests, err := h.requestService.ListRequests(r.Context(), user)
	if err != nil {
		handleError(w, err)
		return
	}

	responses := make([]*models.RideRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, requests[i].ToResponse())
	}
	utils.JSON(w, http.StatusOK, responses)
}

// POST /api/ride-requests
func (h *RideRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.CreateRideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	request, err := h.requestService.CreateRequest(r.Context(), user, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, request.ToResponse())
}

// PUT /api/ride-requests/{id}/cancel
func (h *RideRequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		handleError(w, apperrors.NotFound("ride request"))
		return
	}

	request, err := h.requestService.CancelRequest(r.Context(), user, id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, request.ToResponse())
}

// PUT /api/ride-requests/{id}/match
func (h *RideRequestHandler) MatchRequest(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		handleError(w, apperrors.NotFound("ride request"))
		return
	}

	request, err := h.requestService.MatchRequest(r.Context(), user, id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, request.ToResponse())
}
