package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

type workoutRepository struct {
	pool *pgxpool.Pool
}

// NewWorkoutRepository instantiates a Postgres-backed workout repository.
func NewWorkoutRepository(pool *pgxpool.Pool) repository.WorkoutRepository {
	return &workoutRepository{pool: pool}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) error {
	if workout == nil || workout.UserID == "" {
		return domain.ErrInvalidPayload
	}
	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	if workout.Date.IsZero() {
		workout.Date = time.Now()
	}

	const query = `
		INSERT INTO workouts (id, user_id, type, exercises, duration, buddy_id, notes, date)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		workout.ID,
		workout.UserID,
		workout.Type,
		textArray(workout.Exercises),
		workout.Duration,
		workout.BuddyID,
		workout.Notes,
		workout.Date,
	)
	return err
}

func (r *workoutRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Workout, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
		SELECT id, user_id, type, exercises, duration, COALESCE(buddy_id, ''), notes, date
		FROM workouts
		WHERE user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []domain.Workout
	for rows.Next() {
		var w domain.Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Type, &w.Exercises, &w.Duration, &w.BuddyID, &w.Notes, &w.Date); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (r *workoutRepository) Schedule(ctx context.Context, workout *domain.ScheduledWorkout) error {
	if workout == nil || workout.UserID == "" || workout.BuddyID == "" {
		return domain.ErrInvalidPayload
	}
	if workout.ID == "" {
		workout.ID = uuid.NewString()
	}
	if workout.Status == "" {
		workout.Status = domain.WorkoutPending
	}

	const query = `
		INSERT INTO scheduled_workouts (id, user_id, buddy_id, date, time, gym, type, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`
	return r.pool.QueryRow(ctx, query,
		workout.ID,
		workout.UserID,
		workout.BuddyID,
		workout.Date,
		workout.Time,
		workout.Gym,
		workout.Type,
		workout.Notes,
		string(workout.Status),
	).Scan(&workout.CreatedAt)
}

func (r *workoutRepository) ListScheduled(ctx context.Context, userID string) ([]domain.ScheduledWorkout, error) {
	const query = `
		SELECT id, user_id, buddy_id, date, time, gym, type, notes, status, created_at
		FROM scheduled_workouts
		WHERE (user_id = $1 OR buddy_id = $1) AND status = 'pending'
		ORDER BY date ASC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []domain.ScheduledWorkout
	for rows.Next() {
		var w domain.ScheduledWorkout
		var status string
		if err := rows.Scan(&w.ID, &w.UserID, &w.BuddyID, &w.Date, &w.Time, &w.Gym, &w.Type, &w.Notes, &status, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Status = domain.ScheduledWorkoutStatus(status)
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}
