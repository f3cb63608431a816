package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
	"github.com/swolemates/backend/usecase"
)

type UseCase struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	notifier usecase.Notifier
	logger   *zap.Logger
}

func New(messages repository.MessageRepository, users repository.UserRepository, notifier usecase.Notifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		messages: messages,
		users:    users,
		notifier: notifier,
		logger:   logger,
	}
}

// Conversation returns the full message history between the caller and
// the other user, oldest first.
func (uc *UseCase) Conversation(ctx context.Context, userID, otherID string, limit int) ([]domain.Message, error) {
	if _, err := uc.users.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	return uc.messages.Conversation(ctx, userID, otherID, limit)
}

// Send delivers a chat message. Chatting is restricted to matched pairs.
func (uc *UseCase) Send(ctx context.Context, senderID, receiverID, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "message content is empty")
	}
	if senderID == receiverID {
		return nil, domain.NewError(domain.ErrCodeInvalid, "cannot message yourself")
	}

	sender, err := uc.users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.users.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}
	if !sender.IsMatchedWith(receiverID) {
		return nil, domain.ErrNotMatched
	}

	message := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := uc.messages.Create(ctx, message); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		notification := &domain.Notification{
			UserID:  receiverID,
			Type:    domain.NotificationMessage,
			Message: fmt.Sprintf("%s sent you a message", sender.Name),
			Data:    map[string]string{"user_id": senderID},
		}
		if err := uc.notifier.Dispatch(ctx, notification); err != nil {
			uc.logger.Warn("message notification dropped", zap.String("receiver_id", receiverID), zap.Error(err))
		}
	}

	return message, nil
}

// MarkRead flags everything the other user sent to the caller as read.
func (uc *UseCase) MarkRead(ctx context.Context, userID, otherID string) error {
	return uc.messages.MarkRead(ctx, otherID, userID)
}
