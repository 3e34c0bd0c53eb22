package utils

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
)

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends the API's standard error shape: {"error": "<message>"}
func Error(w http.ResponseWriter, err *apperrors.APIError) {
	JSON(w, err.StatusCode, map[string]string{"error": err.Message})
}

// ErrorMessage sends an arbitrary error message with the given status
func ErrorMessage(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// BadRequest sends a 400 error
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, apperrors.Validation(message))
}

// Unauthorized sends a 401 error
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, apperrors.Auth(message))
}

// InternalError sends a 500 error
func InternalError(w http.ResponseWriter, message string) {
	Error(w, apperrors.Internal(message))
}

// Created sends a 201 response
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}
