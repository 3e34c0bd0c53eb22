package models

import (
	"time"
)

// User roles
const (
	UserTypePassenger = "passenger"
	UserTypeDriver    = "driver"
	UserTypeAdmin     = "admin"
)

type User struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Phone          string    `db:"phone" json:"phone"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	UserType       string    `db:"user_type" json:"user_type"`
	CarModel       *string   `db:"car_model" json:"car_model,omitempty"`
	PlateNumber    *string   `db:"plate_number" json:"plate_number,omitempty"`
	Rating         float64   `db:"rating" json:"rating"`
	CompletedTrips int       `db:"completed_trips" json:"completed_trips"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

func (u *User) IsDriver() bool {
	return u.UserType == UserTypeDriver
}

func (u *User) IsPassenger() bool {
	return u.UserType == UserTypePassenger
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Phone       string `json:"phone" validate:"required,min=5,max=20"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	UserType    string `json:"user_type" validate:"required,oneof=passenger driver"`
	CarModel    string `json:"car_model,omitempty" validate:"omitempty,max=100"`
	PlateNumber string `json:"plate_number,omitempty" validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	CarModel    string `json:"car_model,omitempty" validate:"omitempty,max=100"`
	PlateNumber string `json:"plate_number,omitempty" validate:"omitempty,max=20"`
}

type UserResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	UserType       string  `json:"user_type"`
	CarModel       *string `json:"car_model"`
	PlateNumber    *string `json:"plate_number"`
	Rating         float64 `json:"rating"`
	CompletedTrips int     `json:"completed_trips"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Phone:          u.Phone,
		UserType:       u.UserType,
		CarModel:       u.CarModel,
		PlateNumber:    u.PlateNumber,
		Rating:         u.Rating,
		CompletedTrips: u.CompletedTrips,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}
