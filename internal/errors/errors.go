package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Business errors
	ErrTripNotOpen         = errors.New("trip is not open for booking")
	ErrNotEnoughSeats      = errors.New("not enough seats available")
	ErrAlreadyBooked       = errors.New("trip already booked by this passenger")
	ErrBookingNotConfirmed = errors.New("booking is not in confirmed state")
	ErrTripNotCompletable  = errors.New("trip cannot be completed in its current state")
	ErrRequestNotActive    = errors.New("ride request is not active")
)

// APIError is an error with an HTTP status attached. The wire shape is
// {"error": "<message>"}.
type APIError struct {
	Message    string `json:"error"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

func New(message string, statusCode int) *APIError {
	return &APIError{Message: message, StatusCode: statusCode}
}

// Validation covers bad or missing input.
func Validation(message string) *APIError {
	return New(message, http.StatusBadRequest)
}

// Auth covers missing or invalid credentials and tokens.
func Auth(message string) *APIError {
	return New(message, http.StatusUnauthorized)
}

// Forbidden covers wrong-role and not-owner failures.
func Forbidden(message string) *APIError {
	return New(message, http.StatusForbidden)
}

func NotFound(resource string) *APIError {
	return New(fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Conflict covers duplicate phone and duplicate booking. The API contract
// reports conflicts as 400, not 409.
func Conflict(message string) *APIError {
	return New(message, http.StatusBadRequest)
}

// State covers illegal status transitions and capacity failures.
func State(message string) *APIError {
	return New(message, http.StatusBadRequest)
}

func Internal(message string) *APIError {
	return New(message, http.StatusInternalServerError)
}
