package usecase

import (
	"context"

	"github.com/swolemates/backend/domain"
)

// Notifier abstracts the notification dispatcher so use cases stay
// delivery-agnostic. Dispatch is best-effort; a non-nil error means the
// event could not even be parked for retry.
type Notifier interface {
	Dispatch(ctx context.Context, notification *domain.Notification) error
}

// PairLocker serializes work on an unordered user pair. The returned
// release function must be called exactly once.
type PairLocker interface {
	Acquire(ctx context.Context, a, b string) (func(), error)
}

// ProfileCache is an optional read-through cache for profile loads.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*domain.UserProfile, bool)
	Set(ctx context.Context, user *domain.UserProfile)
	Invalidate(ctx context.Context, ids ...string)
}
