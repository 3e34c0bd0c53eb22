package models

import (
	"time"
)

type Message struct {
	ID         string    `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"sender_id"`
	ReceiverID string    `db:"receiver_id" json:"receiver_id"`
	Content    string    `db:"content" json:"content"`
	IsRead     bool      `db:"is_read" json:"is_read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`

	// Attached by the repository.
	Sender *User `db:"-" json:"-"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required,uuid"`
	Content    string `json:"content" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID         string        `json:"id"`
	SenderID   string        `json:"sender_id"`
	ReceiverID string        `json:"receiver_id"`
	Content    string        `json:"content"`
	IsRead     bool          `json:"is_read"`
	CreatedAt  string        `json:"created_at"`
	Sender     *UserResponse `json:"sender,omitempty"`
}

func (m *Message) ToResponse() *MessageResponse {
	resp := &MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt.Format(DepartureTimeDisplayFormat),
	}
	if m.Sender != nil {
		resp.Sender = m.Sender.ToResponse()
	}
	return resp
}
