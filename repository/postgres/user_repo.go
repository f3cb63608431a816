package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

// profileColumns is the shared SELECT list. The password hash is deliberately
// absent so credentials can never leak through a profile read.
const profileColumns = `
	id, name, email, age, profile_pic, bio, experience, goals, schedule, gym,
	longitude, latitude, city, workouts_this_month, streak, last_workout_date,
	liked_users, passed_users, matches, created_at, updated_at
`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM users WHERE id = $1`

	user, err := scanProfile(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetMany(ctx context.Context, ids []string) ([]domain.UserProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + profileColumns + ` FROM users WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProfiles(rows)
}

func (r *userRepository) FindNear(ctx context.Context, filter repository.NearFilter) ([]domain.UserProfile, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	exclude := filter.ExcludeIDs
	if exclude == nil {
		exclude = []string{}
	}

	// Haversine in SQL keeps the radius cut inside the store instead of
	// shipping the whole table to the application.
	query := `
		SELECT ` + profileColumns + ` FROM (
			SELECT *, 2 * 6371 * asin(sqrt(
				pow(sin(radians(latitude - $1) / 2), 2) +
				cos(radians($1)) * cos(radians(latitude)) *
				pow(sin(radians(longitude - $2) / 2), 2)
			)) AS distance_km
			FROM users
			WHERE NOT (id = ANY($3))
			  AND NOT (longitude = 0 AND latitude = 0)
		) nearby
		WHERE distance_km <= $4
		ORDER BY distance_km ASC, id ASC
		LIMIT $5
	`

	rows, err := r.pool.Query(ctx, query,
		filter.Origin.Latitude,
		filter.Origin.Longitude,
		exclude,
		filter.RadiusKm,
		filter.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectProfiles(rows)
}

const saveProfileQuery = `
	INSERT INTO users (
		id, name, email, age, profile_pic, bio, experience, goals, schedule, gym,
		longitude, latitude, city, workouts_this_month, streak, last_workout_date,
		liked_users, passed_users, matches, created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18, $19, COALESCE($20, NOW()), NOW())
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		email = EXCLUDED.email,
		age = EXCLUDED.age,
		profile_pic = EXCLUDED.profile_pic,
		bio = EXCLUDED.bio,
		experience = EXCLUDED.experience,
		goals = EXCLUDED.goals,
		schedule = EXCLUDED.schedule,
		gym = EXCLUDED.gym,
		longitude = EXCLUDED.longitude,
		latitude = EXCLUDED.latitude,
		city = EXCLUDED.city,
		workouts_this_month = EXCLUDED.workouts_this_month,
		streak = EXCLUDED.streak,
		last_workout_date = EXCLUDED.last_workout_date,
		liked_users = EXCLUDED.liked_users,
		passed_users = EXCLUDED.passed_users,
		matches = EXCLUDED.matches,
		updated_at = NOW()
	RETURNING created_at, updated_at;
`

func (r *userRepository) Save(ctx context.Context, user *domain.UserProfile) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	return saveProfile(ctx, r.pool, user)
}

func (r *userRepository) SavePair(ctx context.Context, a, b *domain.UserProfile) error {
	if a == nil || b == nil || a.ID == "" || b.ID == "" {
		return domain.ErrInvalidPayload
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Deterministic write order avoids deadlocks between concurrent pairs.
	first, second := a, b
	if second.ID < first.ID {
		first, second = second, first
	}
	if err := saveProfile(ctx, tx, first); err != nil {
		return err
	}
	if err := saveProfile(ctx, tx, second); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *userRepository) ResetMonthlyCounters(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET workouts_this_month = 0, updated_at = NOW()`)
	return err
}

// querier covers both pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func saveProfile(ctx context.Context, q querier, user *domain.UserProfile) error {
	var createdAt, updatedAt time.Time

	err := q.QueryRow(ctx, saveProfileQuery,
		user.ID,
		user.Name,
		user.Email,
		user.Age,
		user.ProfilePic,
		user.Bio,
		string(user.Experience),
		textArray(user.Goals),
		string(user.Schedule),
		user.Gym,
		user.Location.Longitude,
		user.Location.Latitude,
		user.City,
		user.WorkoutsMonth,
		user.Streak,
		user.LastWorkoutDate,
		textArray(user.LikedUsers),
		textArray(user.PassedUsers),
		textArray(user.Matches),
		nullTime(user.CreatedAt),
	).Scan(&createdAt, &updatedAt)
	if err != nil {
		return err
	}

	user.CreatedAt = createdAt
	user.UpdatedAt = updatedAt
	return nil
}

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var user domain.UserProfile
	var experience, schedule string

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Age,
		&user.ProfilePic,
		&user.Bio,
		&experience,
		&user.Goals,
		&schedule,
		&user.Gym,
		&user.Location.Longitude,
		&user.Location.Latitude,
		&user.City,
		&user.WorkoutsMonth,
		&user.Streak,
		&user.LastWorkoutDate,
		&user.LikedUsers,
		&user.PassedUsers,
		&user.Matches,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Experience = domain.ExperienceLevel(experience)
	user.Schedule = domain.Schedule(schedule)
	return &user, nil
}

func collectProfiles(rows pgx.Rows) ([]domain.UserProfile, error) {
	var users []domain.UserProfile
	for rows.Next() {
		user, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}
