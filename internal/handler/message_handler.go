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

type MessageHandler struct {
	messageService service.MessageService
	validate       *validator.Validate
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validate:       validator.New(),
	}
}

func (h *MessageHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Get("/messages", h.ListMessages)
	r.Post("/messages", h.SendMessage)
	r.Put("/messages/{id}/read", h.MarkRead)
}

// GET /api/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	messages, err := h.messageService.ListForUser(r.Context(), user.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	responses := make([]*models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].ToResponse())
	}
	utils.JSON(w, http.StatusOK, responses)
}

// POST /api/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	msg, err := h.messageService.Send(r.Context(), user, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, msg.ToResponse())
}

// PUT /api/messages/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		handleError(w, apperrors.NotFound("message"))
		return
	}

	msg, err := h.messageService.MarkRead(r.Context(), user, id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, msg.ToResponse())
}
