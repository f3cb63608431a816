package repository

import (
	"context"

	"github.com/swolemates/backend/domain"
)

type GymRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Gym, error)
	// FindNear returns gyms within radiusKm of the origin, nearest first.
	FindNear(ctx context.Context, origin domain.Point, radiusKm float64, limit int) ([]domain.Gym, error)
}
