package gym

import (
	"context"

	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

type UseCase struct {
	gyms   repository.GymRepository
	logger *zap.Logger
}

func New(gyms repository.GymRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		gyms:   gyms,
		logger: logger,
	}
}

func (uc *UseCase) Nearby(ctx context.Context, origin domain.Point, radiusKm float64, limit int) ([]domain.Gym, error) {
	if !origin.Valid() || origin.IsZero() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "valid coordinates are required")
	}
	return uc.gyms.FindNear(ctx, origin, radiusKm, limit)
}

func (uc *UseCase) Get(ctx context.Context, id string) (*domain.Gym, error) {
	return uc.gyms.GetByID(ctx, id)
}
