package service

import (
	"context"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/repository"
)

type MessageService interface {
	Send(ctx context.Context, sender *models.User, req *models.SendMessageRequest) (*models.Message, error)
	ListForUser(ctx context.Context, userID string) ([]models.Message, error)
	// MarkRead flips is_read; only the receiver may do it.
	MarkRead(ctx context.Context, actor *models.User, messageID string) (*models.Message, error)
}

type messageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
}

func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo}
}

func (s *messageService) Send(ctx context.Context, sender *models.User, req *models.SendMessageRequest) (*models.Message, error) {
	receiver, err := s.userRepo.GetByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, apperrors.NotFound("receiver")
	}

	msg := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    req.Content,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	msg.Sender = sender
	return msg, nil
}

func (s *messageService) ListForUser(ctx context.Context, userID string) ([]models.Message, error) {
	return s.messageRepo.ListByUser(ctx, userID)
}

func (s *messageService) MarkRead(ctx context.Context, actor *models.User, messageID string) (*models.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, apperrors.NotFound("message")
	}
	if msg.ReceiverID != actor.ID {
		return nil, apperrors.Forbidden("only the receiver can mark a message read")
	}

	if !msg.IsRead {
		if err := s.messageRepo.MarkRead(ctx, msg.ID); err != nil {
			return nil, err
		}
		msg.IsRead = true
	}
	return msg, nil
}
