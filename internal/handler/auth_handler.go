package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aditya/go-ridepool/internal/middleware"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/service"
	"github.com/aditya/go-ridepool/pkg/utils"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/user/profile", h.GetProfile)
	r.Put("/user/profile", h.UpdateProfile)
}

// POST /api/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, resp)
}

// POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, resp)
}

// GET /api/user/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	utils.JSON(w, http.StatusOK, user.ToResponse())
}

// PUT /api/user/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	updated, err := h.authService.UpdateProfile(r.Context(), user, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, updated.ToResponse())
}
