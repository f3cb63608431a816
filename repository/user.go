package repository

import (
	"context"

	"github.com/swolemates/backend/domain"
)

// NearFilter bounds a geographic candidate query before scoring happens.
type NearFilter struct {
	Origin     domain.Point
	RadiusKm   float64
	ExcludeIDs []string
	Limit      int
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.UserProfile, error)
	GetMany(ctx context.Context, ids []string) ([]domain.UserProfile, error)
	// FindNear returns profiles whose location lies within the filter
	// radius, nearest first. Credentials are never selected.
	FindNear(ctx context.Context, filter NearFilter) ([]domain.UserProfile, error)
	Save(ctx context.Context, user *domain.UserProfile) error
	// SavePair persists both profiles inside a single transaction so the
	// mutual-match edge is either recorded on both sides or on neither.
	SavePair(ctx context.Context, a, b *domain.UserProfile) error
	// ResetMonthlyCounters zeroes workouts_this_month for every profile.
	ResetMonthlyCounters(ctx context.Context) error
}
