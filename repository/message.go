package repository

import (
	"context"

	"github.com/swolemates/backend/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	// Conversation returns all messages between the two users in both
	// directions, oldest first.
	Conversation(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error)
	// MarkRead flags every unread message sent by senderID to receiverID.
	MarkRead(ctx context.Context, senderID, receiverID string) error
}
