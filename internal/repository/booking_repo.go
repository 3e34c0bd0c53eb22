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

type BookingRepository interface {
	// Book reserves seats on a trip for a passenger. The seat check, the
	// duplicate-booking check and the decrement all happen inside one
	// transaction with the trip row locked, so concurrent bookers cannot
	// drive available_seats negative.
	Book(ctx context.Context, tripID, passengerID string, seats int) (*models.Booking, error)
	// Cancel returns the booking's seats to the trip and marks the booking
	// cancelled, under the same locking discipline as Book.
	Cancel(ctx context.Context, bookingID, passengerID string) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByPassenger(ctx context.Context, passengerID string) ([]models.Booking, error)
	Count(ctx context.Context) (int, error)
}

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Book(ctx context.Context, tripID, passengerID string, seats int) (*models.Booking, error) {
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

	if err := trip.ReserveSeats(seats); err != nil {
		return nil, err
	}

	// A cancelled booking does not block rebooking the same trip.
	var exists bool
	err = tx.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE trip_id = $1 AND passenger_id = $2 AND status = $3)`,
		tripID, passengerID, models.BookingStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyBooked
	}

	now := time.Now()
	booking := &models.Booking{
		ID:          uuid.New().String(),
		TripID:      tripID,
		PassengerID: passengerID,
		Seats:       seats,
		Amount:      trip.Price * float64(seats),
		Status:      models.BookingStatusConfirmed,
		Paid:        false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO bookings (id, trip_id, passenger_id, seats, amount, status, paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		booking.ID, booking.TripID, booking.PassengerID, booking.Seats,
		booking.Amount, booking.Status, booking.Paid, booking.CreatedAt, booking.UpdatedAt)
	if isUniqueViolation(err) {
		return nil, apperrors.ErrAlreadyBooked
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE trips SET available_seats = $1, status = $2, updated_at = $3 WHERE id = $4`,
		trip.AvailableSeats, trip.Status, now, trip.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	booking.Trip = trip
	return booking, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, bookingID, passengerID string) (*models.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var booking models.Booking
	err = tx.GetContext(ctx, &booking,
		`SELECT * FROM bookings WHERE id = $1 FOR UPDATE`, bookingID)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if booking.PassengerID != passengerID {
		return nil, apperrors.ErrForbidden
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, apperrors.ErrBookingNotConfirmed
	}

	trip, err := getTripForUpdate(ctx, tx, booking.TripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, apperrors.ErrNotFound
	}

	trip.ReleaseSeats(booking.Seats)

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE trips SET available_seats = $1, status = $2, updated_at = $3 WHERE id = $4`,
		trip.AvailableSeats, trip.Status, now, trip.ID)
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.UpdatedAt = now
	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`,
		booking.Status, now, booking.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	booking.Trip = trip
	return &booking, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	query := `SELECT * FROM bookings WHERE id = $1`
	err := r.db.GetContext(ctx, &booking, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) ListByPassenger(ctx context.Context, passengerID string) ([]models.Booking, error) {
	bookings := []models.Booking{}
	query := `SELECT * FROM bookings WHERE passenger_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &bookings, query, passengerID); err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return bookings, nil
	}

	tripIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		tripIDs = append(tripIDs, b.TripID)
	}

	tripQuery, args, err := sqlx.In(`
		SELECT `+tripWithDriverColumns+`
		FROM trips t
		JOIN users u ON u.id = t.driver_id
		WHERE t.id IN (?)`, tripIDs)
	if err != nil {
		return nil, err
	}

	trips := []models.Trip{}
	if err := r.db.SelectContext(ctx, &trips, r.db.Rebind(tripQuery), args...); err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Trip, len(trips))
	for i := range trips {
		byID[trips[i].ID] = &trips[i]
	}
	for i := range bookings {
		bookings[i].Trip = byID[bookings[i].TripID]
	}
	return bookings, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookings`)
	return n, err
}
