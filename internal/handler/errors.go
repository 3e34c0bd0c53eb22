package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/pkg/utils"
)

// handleError maps service errors to HTTP responses. Services translate
// business failures into APIErrors; anything else is a 500.
func handleError(w http.ResponseWriter, err error) {
	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		utils.Error(w, apiErr)
		return
	}

	logrus.WithError(err).Error("unhandled error")
	utils.InternalError(w, "internal server error")
}

// NotFoundHandler keeps unknown routes on the JSON error contract.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	utils.ErrorMessage(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowedHandler does the same for wrong methods.
func MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	utils.ErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
}
