package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aditya/go-ridepool/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	// ListByUser returns messages the user sent or received, newest first,
	// with sender profiles attached.
	ListByUser(ctx context.Context, userID string) ([]models.Message, error)
	MarkRead(ctx context.Context, id string) error
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()

	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.SenderID, msg.ReceiverID, msg.Content, msg.IsRead, msg.CreatedAt)
	return err
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var msg models.Message
	query := `SELECT * FROM messages WHERE id = $1`
	err := r.db.GetContext(ctx, &msg, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &msg, err
}

func (r *messageRepository) ListByUser(ctx context.Context, userID string) ([]models.Message, error) {
	msgs := []models.Message{}
	query := `
		SELECT * FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &msgs, query, userID); err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return msgs, nil
	}

	senderIDs := make([]string, 0, len(msgs))
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		if !seen[m.SenderID] {
			seen[m.SenderID] = true
			senderIDs = append(senderIDs, m.SenderID)
		}
	}

	userQuery, args, err := sqlx.In(`SELECT * FROM users WHERE id IN (?)`, senderIDs)
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(userQuery), args...); err != nil {
		return nil, err
	}

	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for i := range msgs {
		msgs[i].Sender = byID[msgs[i].SenderID]
	}
	return msgs, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET is_read = TRUE WHERE id = $1`, id)
	return err
}
