package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
)

const pgUniqueViolation = "23505"

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	if user.Rating == 0 {
		user.Rating = 5.0
	}

	query := `
		INSERT INTO users (id, name, phone, password_hash, user_type,
			car_model, plate_number, rating, completed_trips, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Phone, user.PasswordHash, user.UserType,
		user.CarModel, user.PlateNumber, user.Rating, user.CompletedTrips,
		user.CreatedAt, user.UpdatedAt)
	if isUniqueViolation(err) {
		return apperrors.ErrConflict
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE phone = $1`
	err := r.db.GetContext(ctx, &user, query, phone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	query := `
		UPDATE users
		SET name = $1, car_model = $2, plate_number = $3, updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query,
		user.Name, user.CarModel, user.PlateNumber, user.UpdatedAt, user.ID)
	return err
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
