package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aditya/go-ridepool/internal/models"
)

type RideRequestRepository interface {
	Create(ctx context.Context, req *models.RideRequest) error
	GetByID(ctx context.Context, id string) (*models.RideRequest, error)
	ListActive(ctx context.Context) ([]models.RideRequest, error)
	ListByPassenger(ctx context.Context, passengerID string) ([]models.RideRequest, error)
	// UpdateStatusIf is a compare-and-swap: the status changes only if the
	// request is currently in the expected state.
	UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error)
	Count(ctx context.Context) (int, error)
}

type rideRequestRepository struct {
	db *sqlx.DB
}

func NewRideRequestRepository(db *sqlx.DB) RideRequestRepository {
	return &rideRequestRepository{db: db}
}

func (r *rideRequestRepository) Create(ctx context.Context, req *models.RideRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	req.Status = models.RideRequestStatusActive

	query := `
		INSERT INTO ride_requests (id, passenger_id, start_point, end_point,
			departure_time, seats, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.PassengerID, req.StartPoint, req.EndPoint,
		req.DepartureTime, req.Seats, req.Note, req.Status,
		req.CreatedAt, req.UpdatedAt)
	return err
}

func (r *rideRequestRepository) GetByID(ctx context.Context, id string) (*models.RideRequest, error) {
	var req models.RideRequest
	query := `
		SELECT rq.*, u.name AS passenger_name
		FROM ride_requests rq
		JOIN users u ON u.id = rq.passenger_id
		WHERE rq.id = $1
	`
	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &req, err
}

func (r *rideRequestRepository) ListActive(ctx context.Context) ([]models.RideRequest, error) {
	reqs := []models.RideRequest{}
	query := `
		SELECT rq.*, u.name AS passenger_name
		FROM ride_requests rq
		JOIN users u ON u.id = rq.passenger_id
		WHERE rq.status = $1
		ORDER BY rq.departure_time ASC
	`
	err := r.db.SelectContext(ctx, &reqs, query, models.RideRequestStatusActive)
	return reqs, err
}

func (r *rideRequestRepository) ListByPassenger(ctx context.Context, passengerID string) ([]models.RideRequest, error) {
	reqs := []models.RideRequest{}
	query := `
		SELECT rq.*, u.name AS passenger_name
		FROM ride_requests rq
		JOIN users u ON u.id = rq.passenger_id
		WHERE rq.passenger_id = $1
		ORDER BY rq.created_at DESC
	`
	err := r.db.SelectContext(ctx, &reqs, query, passengerID)
	return reqs, err
}

func (r *rideRequestRepository) UpdateStatusIf(ctx context.Context, id, from, to string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ride_requests SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *rideRequestRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM ride_requests`)
	return n, err
}
