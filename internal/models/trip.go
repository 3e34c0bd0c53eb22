package models

import (
	"time"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
)

// Trip status constants
const (
	TripStatusActive    = "active"
	TripStatusOngoing   = "ongoing"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

// Departure time formats: the API accepts the first on input and renders
// the second in responses.
const (
	DepartureTimeWireFormat    = "2006-01-02T15:04"
	DepartureTimeDisplayFormat = "2006-01-02 15:04"
)

type Trip struct {
	ID             string    `db:"id" json:"id"`
	DriverID       string    `db:"driver_id" json:"driver_id"`
	StartPoint     string    `db:"start_point" json:"start_point"`
	EndPoint       string    `db:"end_point" json:"end_point"`
	DepartureTime  time.Time `db:"departure_time" json:"departure_time"`
	AvailableSeats int       `db:"available_seats" json:"available_seats"`
	Price          float64   `db:"price" json:"price"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`

	// Filled from a join with the driver's user row in list queries.
	DriverName        *string  `db:"driver_name" json:"-"`
	DriverCarModel    *string  `db:"driver_car_model" json:"-"`
	DriverPlateNumber *string  `db:"driver_plate_number" json:"-"`
	DriverRating      *float64 `db:"driver_rating" json:"-"`
}

// ReserveSeats takes n seats for a booking. The trip must be active and have
// capacity; the last seat flips the trip to ongoing.
func (t *Trip) ReserveSeats(n int) error {
	if t.Status != TripStatusActive {
		return apperrors.ErrTripNotOpen
	}
	if n < 1 {
		return apperrors.ErrBadRequest
	}
	if n > t.AvailableSeats {
		return apperrors.ErrNotEnoughSeats
	}
	t.AvailableSeats -= n
	if t.AvailableSeats == 0 {
		t.Status = TripStatusOngoing
	}
	return nil
}

// ReleaseSeats returns n seats from a cancelled booking. An ongoing trip with
// seats again goes back to active.
func (t *Trip) ReleaseSeats(n int) {
	t.AvailableSeats += n
	if t.Status == TripStatusOngoing && t.AvailableSeats > 0 {
		t.Status = TripStatusActive
	}
}

// CanComplete reports whether the driver may end the trip.
func (t *Trip) CanComplete() bool {
	return t.Status == TripStatusActive || t.Status == TripStatusOngoing
}

type CreateTripRequest struct {
	StartPoint     string  `json:"start_point" validate:"required,max=200"`
	EndPoint       string  `json:"end_point" validate:"required,max=200"`
	DepartureTime  string  `json:"departure_time" validate:"required"`
	AvailableSeats int     `json:"available_seats" validate:"required,min=1,max=8"`
	Price          float64 `json:"price" validate:"required,gt=0"`
}

type TripDriver struct {
	Name        string  `json:"name"`
	CarModel    *string `json:"car_model"`
	PlateNumber *string `json:"plate_number"`
	Rating      float64 `json:"rating"`
}

type TripResponse struct {
	ID             string      `json:"id"`
	DriverID       string      `json:"driver_id"`
	StartPoint     string      `json:"start_point"`
	EndPoint       string      `json:"end_point"`
	DepartureTime  string      `json:"departure_time"`
	AvailableSeats int         `json:"available_seats"`
	Price          float64     `json:"price"`
	Status         string      `json:"status"`
	Driver         *TripDriver `json:"driver,omitempty"`
}

func (t *Trip) ToResponse() *TripResponse {
	resp := &TripResponse{
		ID:             t.ID,
		DriverID:       t.DriverID,
		StartPoint:     t.StartPoint,
		EndPoint:       t.EndPoint,
		DepartureTime:  t.DepartureTime.Format(DepartureTimeDisplayFormat),
		AvailableSeats: t.AvailableSeats,
		Price:          t.Price,
		Status:         t.Status,
	}
	if t.DriverName != nil {
		resp.Driver = &TripDriver{
			Name:        *t.DriverName,
			CarModel:    t.DriverCarModel,
			PlateNumber: t.DriverPlateNumber,
			Rating:      ptrToFloat(t.DriverRating),
		}
	}
	return resp
}

func ptrToFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
