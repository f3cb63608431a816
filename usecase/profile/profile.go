package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
	"github.com/swolemates/backend/usecase"
)

// Update carries the fields a user may change on their own profile.
// Relationship sets and workout stats are owned by the engine and cannot
// be written through here.
type Update struct {
	Name       string
	Age        int
	ProfilePic string
	Bio        string
	Experience domain.ExperienceLevel
	Goals      []string
	Schedule   domain.Schedule
	Gym        string
	Location   *domain.Point
	City       string
}

type UseCase struct {
	users  repository.UserRepository
	cache  usecase.ProfileCache
	logger *zap.Logger
}

func New(users repository.UserRepository, cache usecase.ProfileCache, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		cache:  cache,
		logger: logger,
	}
}

func (uc *UseCase) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	if uc.cache != nil {
		if user, ok := uc.cache.Get(ctx, userID); ok {
			return user, nil
		}
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, user)
	}
	return user, nil
}

func (uc *UseCase) Update(ctx context.Context, userID string, update Update) (*domain.UserProfile, error) {
	if err := validate(update); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply(user, update)

	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, userID)
	}
	return user, nil
}

func validate(update Update) error {
	if update.Experience != "" && !update.Experience.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unknown experience level %q", update.Experience))
	}
	if update.Schedule != "" && !update.Schedule.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unknown schedule %q", update.Schedule))
	}
	for _, goal := range update.Goals {
		if !domain.ValidGoal(goal) {
			return domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unknown goal %q", goal))
		}
	}
	if update.Location != nil && !update.Location.Valid() {
		return domain.NewError(domain.ErrCodeInvalid, "coordinates out of range")
	}
	if update.Age < 0 {
		return domain.NewError(domain.ErrCodeInvalid, "age must be positive")
	}
	return nil
}

func apply(user *domain.UserProfile, update Update) {
	if update.Name != "" {
		user.Name = update.Name
	}
	if update.Age > 0 {
		user.Age = update.Age
	}
	if update.ProfilePic != "" {
		user.ProfilePic = update.ProfilePic
	}
	if update.Bio != "" {
		user.Bio = update.Bio
	}
	if update.Experience != "" {
		user.Experience = update.Experience
	}
	if update.Goals != nil {
		user.Goals = dedupe(update.Goals)
	}
	if update.Schedule != "" {
		user.Schedule = update.Schedule
	}
	if update.Gym != "" {
		user.Gym = update.Gym
	}
	if update.Location != nil {
		user.Location = *update.Location
	}
	if update.City != "" {
		user.City = update.City
	}
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
