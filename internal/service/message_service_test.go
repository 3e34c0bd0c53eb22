package service

import (
	"context"
	"testing"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
)

func TestSendMessage(t *testing.T) {
	messages := newFakeMessageRepo()
	users := newFakeUserRepo()
	svc := NewMessageService(messages, users)
	ctx := context.Background()

	sender := passengerUser("Priya Sharma")
	receiver := driverUser("Rahul Kumar")
	users.users[receiver.ID] = receiver

	msg, err := svc.Send(ctx, sender, &models.SendMessageRequest{
		ReceiverID: receiver.ID,
		Content:    "Still have a seat for tomorrow?",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if msg.SenderID != sender.ID || msg.ReceiverID != receiver.ID {
		t.Errorf("message routed %q -> %q, want %q -> %q", msg.SenderID, msg.ReceiverID, sender.ID, receiver.ID)
	}
	if msg.IsRead {
		t.Error("new message should be unread")
	}
	if msg.Sender == nil || msg.Sender.ID != sender.ID {
		t.Error("expected sender attached to message")
	}
}

func TestSendMessageUnknownReceiver(t *testing.T) {
	svc := NewMessageService(newFakeMessageRepo(), newFakeUserRepo())

	_, err := svc.Send(context.Background(), passengerUser("Amit Patel"), &models.SendMessageRequest{
		ReceiverID: "missing",
		Content:    "hello",
	})
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("Send() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
}

func TestMarkReadReceiverOnly(t *testing.T) {
	messages := newFakeMessageRepo()
	users := newFakeUserRepo()
	svc := NewMessageService(messages, users)
	ctx := context.Background()

	sender := passengerUser("Sneha Singh")
	receiver := driverUser("Vikram Rao")
	users.users[receiver.ID] = receiver

	msg, err := svc.Send(ctx, sender, &models.SendMessageRequest{
		ReceiverID: receiver.ID,
		Content:    "Running five minutes late",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	// The sender cannot mark their own message read.
	_, err = svc.MarkRead(ctx, sender, msg.ID)
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("MarkRead() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 403 {
		t.Errorf("status = %d, want 403", apiErr.StatusCode)
	}

	read, err := svc.MarkRead(ctx, receiver, msg.ID)
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if !read.IsRead {
		t.Error("expected message marked read")
	}

	// Marking twice is a no-op, not an error.
	if _, err := svc.MarkRead(ctx, receiver, msg.ID); err != nil {
		t.Errorf("second MarkRead() error = %v", err)
	}
}

func TestMarkReadUnknownMessage(t *testing.T) {
	svc := NewMessageService(newFakeMessageRepo(), newFakeUserRepo())

	_, err := svc.MarkRead(context.Background(), passengerUser("Neha Gupta"), "missing")
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("MarkRead() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
}

func TestListForUserIncludesBothDirections(t *testing.T) {
	messages := newFakeMessageRepo()
	users := newFakeUserRepo()
	svc := NewMessageService(messages, users)
	ctx := context.Background()

	a := passengerUser("Priya Sharma")
	b := driverUser("Rahul Kumar")
	users.users[a.ID] = a
	users.users[b.ID] = b

	if _, err := svc.Send(ctx, a, &models.SendMessageRequest{ReceiverID: b.ID, Content: "hi"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if _, err := svc.Send(ctx, b, &models.SendMessageRequest{ReceiverID: a.ID, Content: "hello"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	msgs, err := svc.ListForUser(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(msgs) != 2 {
		t.Errorf("len = %d, want 2", len(msgs))
	}
}
