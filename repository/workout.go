package repository

import (
	"context"

	"github.com/swolemates/backend/domain"
)

type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) error
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Workout, error)
	Schedule(ctx context.Context, workout *domain.ScheduledWorkout) error
	// ListScheduled returns pending sessions where the user is either the
	// organizer or the invited buddy, soonest first.
	ListScheduled(ctx context.Context, userID string) ([]domain.ScheduledWorkout, error)
}
