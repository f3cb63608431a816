package workout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
	"github.com/swolemates/backend/usecase"
)

type UseCase struct {
	workouts repository.WorkoutRepository
	users    repository.UserRepository
	cache    usecase.ProfileCache
	notifier usecase.Notifier
	logger   *zap.Logger
}

func New(workouts repository.WorkoutRepository, users repository.UserRepository, cache usecase.ProfileCache, notifier usecase.Notifier, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		workouts: workouts,
		users:    users,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
	}
}

// Log records a finished workout and folds it into the owner's monthly
// count and streak.
func (uc *UseCase) Log(ctx context.Context, workout *domain.Workout) (*domain.Workout, error) {
	if workout == nil || workout.UserID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if workout.Type == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "workout type is required")
	}
	if workout.Duration <= 0 {
		return nil, domain.NewError(domain.ErrCodeInvalid, "duration must be positive")
	}

	user, err := uc.users.GetByID(ctx, workout.UserID)
	if err != nil {
		return nil, err
	}

	if workout.Date.IsZero() {
		workout.Date = time.Now()
	}
	if err := uc.workouts.Create(ctx, workout); err != nil {
		return nil, err
	}

	user.ApplyWorkout(workout.Date)
	if err := uc.users.Save(ctx, user); err != nil {
		// The workout row is already durable; a failed counter update means
		// the monthly stats undercount until the counters are rebuilt.
		uc.logger.Warn("failed to update workout stats", zap.String("user_id", user.ID), zap.Error(err))
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, user.ID)
	}

	return workout, nil
}

func (uc *UseCase) List(ctx context.Context, userID string, limit int) ([]domain.Workout, error) {
	return uc.workouts.ListByUser(ctx, userID, limit)
}

// Schedule plans a session with a matched buddy and notifies them.
func (uc *UseCase) Schedule(ctx context.Context, workout *domain.ScheduledWorkout) (*domain.ScheduledWorkout, error) {
	if workout == nil || workout.UserID == "" || workout.BuddyID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if workout.UserID == workout.BuddyID {
		return nil, domain.NewError(domain.ErrCodeInvalid, "cannot schedule a workout with yourself")
	}
	if workout.Date.IsZero() || workout.Time == "" || workout.Gym == "" {
		return nil, domain.NewError(domain.ErrCodeInvalid, "date, time and gym are required")
	}

	organizer, err := uc.users.GetByID(ctx, workout.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.users.GetByID(ctx, workout.BuddyID); err != nil {
		return nil, err
	}
	if !organizer.IsMatchedWith(workout.BuddyID) {
		return nil, domain.ErrNotMatched
	}

	workout.Status = domain.WorkoutPending
	if err := uc.workouts.Schedule(ctx, workout); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		notification := &domain.Notification{
			UserID:  workout.BuddyID,
			Type:    domain.NotificationWorkout,
			Message: fmt.Sprintf("%s scheduled a workout with you", organizer.Name),
			Data:    map[string]string{"workout_id": workout.ID},
		}
		if err := uc.notifier.Dispatch(ctx, notification); err != nil {
			uc.logger.Warn("workout notification dropped", zap.String("buddy_id", workout.BuddyID), zap.Error(err))
		}
	}

	return workout, nil
}

func (uc *UseCase) ListScheduled(ctx context.Context, userID string) ([]domain.ScheduledWorkout, error) {
	return uc.workouts.ListScheduled(ctx, userID)
}
