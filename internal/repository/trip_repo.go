package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
)

const tripWithDriverColumns = `
	t.*,
	u.name AS driver_name,
	u.car_model AS driver_car_model,
	u.plate_number AS driver_plate_number,
	u.rating AS driver_rating
`

type TripRepository interface {
	Create(ctx context.Context, trip *models.Trip) error
	GetByID(ctx context.Context, id string) (*models.Trip, error)
	ListActive(ctx context.Context) ([]models.Trip, error)
	ListByDriver(ctx context.Context, driverID string) ([]models.Trip, error)
	// Complete transitions the trip to completed, moves its confirmed bookings
	// to completed and bumps the driver's completed_trips counter, all in one
	// transaction with the trip row locked.
	Complete(ctx context.Context, tripID, driverID string) (*models.Trip, error)
	Count(ctx context.Context) (int, error)
}

type tripRepository struct {
	db *sqlx.DB
}

func NewTripRepository(db *sqlx.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) Create(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	trip.CreatedAt = time.Now()
	trip.UpdatedAt = trip.CreatedAt
	trip.Status = models.TripStatusActive

	query := `
		INSERT INTO trips (id, driver_id, start_point, end_point, departure_time,
			available_seats, price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		trip.ID, trip.DriverID, trip.StartPoint, trip.EndPoint, trip.DepartureTime,
		trip.AvailableSeats, trip.Price, trip.Status, trip.CreatedAt, trip.UpdatedAt)
	return err
}

func (r *tripRepository) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	var trip models.Trip
	query := `
		SELECT ` + tripWithDriverColumns + `
		FROM trips t
		JOIN users u ON u.id = t.driver_id
		WHERE t.id = $1
	`
	err := r.db.GetContext(ctx, &trip, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &trip, err
}

// ListActive is the public marketplace view: active trips ordered by departure
// time ascending, with the driver's public profile joined in.
func (r *tripRepository) ListActive(ctx context.Context) ([]models.Trip, error) {
	trips := []models.Trip{}
	query := `
		SELECT ` + tripWithDriverColumns + `
		FROM trips t
		JOIN users u ON u.id = t.driver_id
		WHERE t.status = $1
		ORDER BY t.departure_time ASC
	`
	err := r.db.SelectContext(ctx, &trips, query, models.TripStatusActive)
	return trips, err
}

func (r *tripRepository) ListByDriver(ctx context.Context, driverID string) ([]models.Trip, error) {
	trips := []models.Trip{}
	query := `
		SELECT ` + tripWithDriverColumns + `
		FROM trips t
		JOIN users u ON u.id = t.driver_id
		WHERE t.driver_id = $1
		ORDER BY t.departure_time DESC
	`
	err := r.db.SelectContext(ctx, &trips, query, driverID)
	return trips, err
}

func (r *tripRepository) Complete(ctx context.Context, tripID, driverID string) (*models.Trip, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	trip, err := getTripForUpdate(ctx, tx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, apperrors.ErrNotFound
	}
	if trip.DriverID != driverID {
		return nil, apperrors.ErrForbidden
	}
	if !trip.CanComplete() {
		return nil, apperrors.ErrTripNotCompletable
	}

	now := time.Now()
	trip.Status = models.TripStatusCompleted
	trip.UpdatedAt = now

	_, err = tx.ExecContext(ctx,
		`UPDATE trips SET status = $1, updated_at = $2 WHERE id = $3`,
		trip.Status, now, trip.ID)
	if err != nil {
		return nil, err
	}

	// Cancelled bookings stay untouched.
	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE trip_id = $3 AND status = $4`,
		models.BookingStatusCompleted, now, trip.ID, models.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE users SET completed_trips = completed_trips + 1, updated_at = $1 WHERE id = $2`,
		now, driverID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return trip, nil
}

func (r *tripRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM trips`)
	return n, err
}

// getTripForUpdate locks the trip row for the duration of the transaction.
func getTripForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*models.Trip, error) {
	var trip models.Trip
	query := `SELECT * FROM trips WHERE id = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &trip, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}
