package workout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

type fakeUserRepo struct {
	users map[string]*domain.UserProfile
	saved []domain.UserProfile
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetMany(context.Context, []string) ([]domain.UserProfile, error) {
	return nil, nil
}

func (r *fakeUserRepo) FindNear(context.Context, repository.NearFilter) ([]domain.UserProfile, error) {
	return nil, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *domain.UserProfile) error {
	r.saved = append(r.saved, *user)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SavePair(context.Context, *domain.UserProfile, *domain.UserProfile) error {
	return nil
}

func (r *fakeUserRepo) ResetMonthlyCounters(context.Context) error { return nil }

type fakeWorkoutRepo struct {
	workouts  []domain.Workout
	scheduled []domain.ScheduledWorkout
}

func (r *fakeWorkoutRepo) Create(_ context.Context, w *domain.Workout) error {
	r.workouts = append(r.workouts, *w)
	return nil
}

func (r *fakeWorkoutRepo) ListByUser(_ context.Context, userID string, _ int) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) Schedule(_ context.Context, w *domain.ScheduledWorkout) error {
	w.CreatedAt = time.Now()
	r.scheduled = append(r.scheduled, *w)
	return nil
}

func (r *fakeWorkoutRepo) ListScheduled(_ context.Context, userID string) ([]domain.ScheduledWorkout, error) {
	var out []domain.ScheduledWorkout
	for _, w := range r.scheduled {
		if w.UserID == userID || w.BuddyID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	sent []domain.Notification
}

func (n *fakeNotifier) Dispatch(_ context.Context, notification *domain.Notification) error {
	n.sent = append(n.sent, *notification)
	return nil
}

func testUsers() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.UserProfile{
		"alice": {ID: "alice", Name: "Alice", Matches: []string{"bob"}},
		"bob":   {ID: "bob", Name: "Bob", Matches: []string{"alice"}},
		"carol": {ID: "carol", Name: "Carol"},
	}}
}

func TestLogRecordsWorkoutAndUpdatesStats(t *testing.T) {
	users := testUsers()
	workouts := &fakeWorkoutRepo{}
	uc := New(workouts, users, nil, &fakeNotifier{}, nil)

	logged, err := uc.Log(context.Background(), &domain.Workout{
		UserID:   "alice",
		Type:     "Push Day",
		Duration: 60,
	})
	require.NoError(t, err)
	assert.False(t, logged.Date.IsZero())
	require.Len(t, workouts.workouts, 1)

	require.Len(t, users.saved, 1)
	assert.Equal(t, 1, users.saved[0].WorkoutsMonth)
	assert.Equal(t, 1, users.saved[0].Streak)
}

func TestLogValidatesInput(t *testing.T) {
	uc := New(&fakeWorkoutRepo{}, testUsers(), nil, &fakeNotifier{}, nil)
	ctx := context.Background()

	_, err := uc.Log(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = uc.Log(ctx, &domain.Workout{UserID: "alice", Duration: 30})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.Log(ctx, &domain.Workout{UserID: "alice", Type: "Legs", Duration: 0})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestLogRequiresExistingUser(t *testing.T) {
	uc := New(&fakeWorkoutRepo{}, testUsers(), nil, &fakeNotifier{}, nil)

	_, err := uc.Log(context.Background(), &domain.Workout{UserID: "ghost", Type: "Legs", Duration: 45})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestScheduleWithMatchedBuddy(t *testing.T) {
	workouts := &fakeWorkoutRepo{}
	notifier := &fakeNotifier{}
	uc := New(workouts, testUsers(), nil, notifier, nil)

	scheduled, err := uc.Schedule(context.Background(), &domain.ScheduledWorkout{
		UserID:  "alice",
		BuddyID: "bob",
		Date:    time.Now().Add(24 * time.Hour),
		Time:    "07:00",
		Gym:     "Iron Temple",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.WorkoutPending, scheduled.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, domain.NotificationWorkout, notifier.sent[0].Type)
	assert.Equal(t, "bob", notifier.sent[0].UserID)
}

func TestScheduleRejectsUnmatchedBuddy(t *testing.T) {
	uc := New(&fakeWorkoutRepo{}, testUsers(), nil, &fakeNotifier{}, nil)

	_, err := uc.Schedule(context.Background(), &domain.ScheduledWorkout{
		UserID:  "alice",
		BuddyID: "carol",
		Date:    time.Now().Add(24 * time.Hour),
		Time:    "07:00",
		Gym:     "Iron Temple",
	})
	assert.ErrorIs(t, err, domain.ErrNotMatched)
}

func TestScheduleRejectsSelf(t *testing.T) {
	uc := New(&fakeWorkoutRepo{}, testUsers(), nil, &fakeNotifier{}, nil)

	_, err := uc.Schedule(context.Background(), &domain.ScheduledWorkout{
		UserID:  "alice",
		BuddyID: "alice",
		Date:    time.Now(),
		Time:    "07:00",
		Gym:     "Iron Temple",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestScheduleRequiresDateTimeAndGym(t *testing.T) {
	uc := New(&fakeWorkoutRepo{}, testUsers(), nil, &fakeNotifier{}, nil)

	_, err := uc.Schedule(context.Background(), &domain.ScheduledWorkout{
		UserID:  "alice",
		BuddyID: "bob",
		Time:    "07:00",
	})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestListScheduledIncludesBuddySide(t *testing.T) {
	workouts := &fakeWorkoutRepo{}
	uc := New(workouts, testUsers(), nil, &fakeNotifier{}, nil)
	ctx := context.Background()

	_, err := uc.Schedule(ctx, &domain.ScheduledWorkout{
		UserID:  "alice",
		BuddyID: "bob",
		Date:    time.Now().Add(24 * time.Hour),
		Time:    "07:00",
		Gym:     "Iron Temple",
	})
	require.NoError(t, err)

	forBob, err := uc.ListScheduled(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, forBob, 1)
}
