package models

import (
	"time"
)

// Ride request status constants
const (
	RideRequestStatusActive    = "active"
	RideRequestStatusMatched   = "matched"
	RideRequestStatusCompleted = "completed"
	RideRequestStatusCancelled = "cancelled"
)

type RideRequest struct {
	ID            string    `db:"id" json:"id"`
	PassengerID   string    `db:"passenger_id" json:"passenger_id"`
	StartPoint    string    `db:"start_point" json:"start_point"`
	EndPoint      string    `db:"end_point" json:"end_point"`
	DepartureTime time.Time `db:"departure_time" json:"departure_time"`
	Seats         int       `db:"seats" json:"seats"`
	Note          string    `db:"note" json:"note"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	// Filled from a join with the passenger's user row in list queries.
	PassengerName *string `db:"passenger_name" json:"-"`
}

type CreateRideRequestRequest struct {
	StartPoint    string `json:"start_point" validate:"required,max=200"`
	EndPoint      string `json:"end_point" validate:"required,max=200"`
	DepartureTime string `json:"departure_time" validate:"required"`
	Seats         int    `json:"seats" validate:"required,min=1,max=8"`
	Note          string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type RideRequestResponse struct {
	ID            string `json:"id"`
	PassengerID   string `json:"passenger_id"`
	PassengerName string `json:"passenger_name,omitempty"`
	StartPoint    string `json:"start_point"`
	EndPoint      string `json:"end_point"`
	DepartureTime string `json:"departure_time"`
	Seats         int    `json:"seats"`
	Note          string `json:"note"`
	Status        string `json:"status"`
}

func (r *RideRequest) ToResponse() *RideRequestResponse {
	resp := &RideRequestResponse{
		ID:            r.ID,
		PassengerID:   r.PassengerID,
		StartPoint:    r.StartPoint,
		EndPoint:      r.EndPoint,
		DepartureTime: r.DepartureTime.Format(DepartureTimeDisplayFormat),
		Seats:         r.Seats,
		Note:          r.Note,
		Status:        r.Status,
	}
	if r.PassengerName != nil {
		resp.PassengerName = *r.PassengerName
	}
	return resp
}
