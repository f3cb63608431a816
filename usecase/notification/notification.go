package notification

import (
	"context"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

type UseCase struct {
	notifications repository.NotificationRepository
}

func New(notifications repository.NotificationRepository) *UseCase {
	return &UseCase{notifications: notifications}
}

func (uc *UseCase) List(ctx context.Context, userID string, limit int) ([]domain.Notification, error) {
	return uc.notifications.ListByUser(ctx, userID, limit)
}

func (uc *UseCase) MarkRead(ctx context.Context, id, userID string) error {
	return uc.notifications.MarkRead(ctx, id, userID)
}
