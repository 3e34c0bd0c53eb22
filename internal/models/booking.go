package models

import (
	"time"
)

// Booking status constants
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID          string    `db:"id" json:"id"`
	TripID      string    `db:"trip_id" json:"trip_id"`
	PassengerID string    `db:"passenger_id" json:"passenger_id"`
	Seats       int       `db:"seats" json:"seats"`
	Amount      float64   `db:"amount" json:"amount"`
	Status      string    `db:"status" json:"status"`
	Paid        bool      `db:"paid" json:"paid"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Attached by the repository, not columns on bookings.
	Trip      *Trip `db:"-" json:"-"`
	Passenger *User `db:"-" json:"-"`
}

type CreateBookingRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
	Seats  int    `json:"seats,omitempty" validate:"omitempty,min=1,max=8"`
}

type BookingResponse struct {
	ID          string        `json:"id"`
	TripID      string        `json:"trip_id"`
	PassengerID string        `json:"passenger_id"`
	Seats       int           `json:"seats"`
	Amount      float64       `json:"amount"`
	Status      string        `json:"status"`
	Paid        bool          `json:"paid"`
	Trip        *TripResponse `json:"trip,omitempty"`
	Passenger   *UserResponse `json:"passenger,omitempty"`
}

func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID,
		TripID:      b.TripID,
		PassengerID: b.PassengerID,
		Seats:       b.Seats,
		Amount:      b.Amount,
		Status:      b.Status,
		Paid:        b.Paid,
	}
	if b.Trip != nil {
		resp.Trip = b.Trip.ToResponse()
	}
	if b.Passenger != nil {
		resp.Passenger = b.Passenger.ToResponse()
	}
	return resp
}
