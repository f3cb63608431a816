package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

const gymColumns = `id, name, longitude, latitude, address, amenities, rating, photos`

type gymRepository struct {
	pool *pgxpool.Pool
}

// NewGymRepository instantiates a Postgres-backed gym repository.
func NewGymRepository(pool *pgxpool.Pool) repository.GymRepository {
	return &gymRepository{pool: pool}
}

func (r *gymRepository) GetByID(ctx context.Context, id string) (*domain.Gym, error) {
	query := `SELECT ` + gymColumns + ` FROM gyms WHERE id = $1`

	gym, err := scanGym(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGymNotFound
		}
		return nil, err
	}
	return gym, nil
}

func (r *gymRepository) FindNear(ctx context.Context, origin domain.Point, radiusKm float64, limit int) ([]domain.Gym, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + gymColumns + ` FROM (
			SELECT *, 2 * 6371 * asin(sqrt(
				pow(sin(radians(latitude - $1) / 2), 2) +
				cos(radians($1)) * cos(radians(latitude)) *
				pow(sin(radians(longitude - $2) / 2), 2)
			)) AS distance_km
			FROM gyms
		) nearby
		WHERE distance_km <= $3
		ORDER BY distance_km ASC, id ASC
		LIMIT $4
	`

	rows, err := r.pool.Query(ctx, query, origin.Latitude, origin.Longitude, radiusKm, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gyms []domain.Gym
	for rows.Next() {
		gym, err := scanGym(rows)
		if err != nil {
			return nil, err
		}
		gyms = append(gyms, *gym)
	}
	return gyms, rows.Err()
}

func scanGym(row pgx.Row) (*domain.Gym, error) {
	var gym domain.Gym
	err := row.Scan(
		&gym.ID,
		&gym.Name,
		&gym.Location.Longitude,
		&gym.Location.Latitude,
		&gym.Address,
		&gym.Amenities,
		&gym.Rating,
		&gym.Photos,
	)
	if err != nil {
		return nil, err
	}
	return &gym, nil
}
