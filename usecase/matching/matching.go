package matching

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/internal/metrics"
	"github.com/swolemates/backend/pkg/geo"
	"github.com/swolemates/backend/repository"
	"github.com/swolemates/backend/usecase"
)

// Config bounds the candidate pipeline.
type Config struct {
	RadiusKm       float64
	CandidateLimit int
	PoolLimit      int
}

func (c Config) withDefaults() Config {
	if c.RadiusKm <= 0 {
		c.RadiusKm = 50
	}
	if c.CandidateLimit <= 0 {
		c.CandidateLimit = 20
	}
	if c.PoolLimit <= 0 {
		c.PoolLimit = 100
	}
	return c
}

// UseCase implements candidate ranking and swipe processing.
type UseCase struct {
	users    repository.UserRepository
	cache    usecase.ProfileCache
	locks    usecase.PairLocker
	notifier usecase.Notifier
	logger   *zap.Logger
	cfg      Config
}

func New(users repository.UserRepository, cache usecase.ProfileCache, locks usecase.PairLocker, notifier usecase.Notifier, logger *zap.Logger, cfg Config) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		cache:    cache,
		locks:    locks,
		notifier: notifier,
		logger:   logger,
		cfg:      cfg.withDefaults(),
	}
}

// Candidates returns the ranked list of potential partners for the
// requester: geographically close, not previously seen, best score first.
func (uc *UseCase) Candidates(ctx context.Context, requesterID string, limit int) ([]domain.RankedCandidate, error) {
	started := time.Now()
	defer func() {
		metrics.CandidateQueryDuration.Observe(time.Since(started).Seconds())
	}()

	if limit <= 0 || limit > uc.cfg.CandidateLimit {
		limit = uc.cfg.CandidateLimit
	}

	requester, err := uc.loadProfile(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if requester.Location.IsZero() || !requester.Location.Valid() {
		return nil, domain.ErrMissingLocation
	}

	pool, err := uc.users.FindNear(ctx, repository.NearFilter{
		Origin:     requester.Location,
		RadiusKm:   uc.cfg.RadiusKm,
		ExcludeIDs: requester.ExcludedIDs(),
		Limit:      uc.cfg.PoolLimit,
	})
	if err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedCandidate, 0, len(pool))
	for i := range pool {
		candidate := &pool[i]
		ranked = append(ranked, domain.RankedCandidate{
			User:               candidate.Sanitized(),
			CompatibilityScore: Score(requester, candidate),
			DistanceKm:         geo.DistanceRoundedKm(requester.Location, candidate.Location),
		})
	}

	// Best score first; nearer, then lower id, breaks ties so paging is
	// reproducible.
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CompatibilityScore != b.CompatibilityScore {
			return a.CompatibilityScore > b.CompatibilityScore
		}
		if a.DistanceKm != b.DistanceKm {
			return a.DistanceKm < b.DistanceKm
		}
		return a.User.ID < b.User.ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// Swipe processes a like/pass decision. All reads and writes for the pair
// happen under the pair lock so two concurrent mutual swipes cannot miss
// each other or fire the match twice.
func (uc *UseCase) Swipe(ctx context.Context, actorID, targetID string, action domain.SwipeAction) (*domain.SwipeResult, error) {
	if actorID == targetID {
		return nil, domain.ErrSelfSwipe
	}
	if !action.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("unknown swipe action %q", action))
	}

	release, err := uc.locks.Acquire(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Reads under the lock bypass the cache: the decision below must see
	// the latest relationship state.
	actor, err := uc.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	metrics.SwipesTotal.WithLabelValues(string(action)).Inc()

	if action == domain.ActionPass {
		if actor.Pass(targetID) {
			if err := uc.users.Save(ctx, actor); err != nil {
				return nil, err
			}
			uc.invalidate(ctx, actorID)
		}
		return &domain.SwipeResult{Matched: false}, nil
	}

	// Re-liking an established match changes nothing and must not
	// re-notify.
	if actor.IsMatchedWith(targetID) {
		matched := target.Sanitized()
		return &domain.SwipeResult{Matched: true, MatchedUser: &matched}, nil
	}

	liked := actor.Like(targetID)

	if !target.HasLiked(actorID) {
		if liked {
			if err := uc.users.Save(ctx, actor); err != nil {
				return nil, err
			}
			uc.invalidate(ctx, actorID)
		}
		return &domain.SwipeResult{Matched: false}, nil
	}

	// Mutual like: record the edge on both sides in one transaction.
	actor.AddMatch(targetID)
	target.AddMatch(actorID)
	if err := uc.users.SavePair(ctx, actor, target); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, actorID, targetID)
	metrics.MatchesTotal.Inc()

	uc.notifyMatch(ctx, actor, target)

	matched := target.Sanitized()
	return &domain.SwipeResult{Matched: true, MatchedUser: &matched}, nil
}

// Matches returns the profiles the user has mutually matched with.
func (uc *UseCase) Matches(ctx context.Context, userID string) ([]domain.UserProfile, error) {
	user, err := uc.loadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Matches) == 0 {
		return []domain.UserProfile{}, nil
	}

	profiles, err := uc.users.GetMany(ctx, user.Matches)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserProfile, 0, len(profiles))
	for i := range profiles {
		out = append(out, profiles[i].Sanitized())
	}
	return out, nil
}

func (uc *UseCase) loadProfile(ctx context.Context, id string) (*domain.UserProfile, error) {
	if uc.cache != nil {
		if user, ok := uc.cache.Get(ctx, id); ok {
			return user, nil
		}
	}
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, user)
	}
	return user, nil
}

func (uc *UseCase) invalidate(ctx context.Context, ids ...string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, ids...)
	}
}

func (uc *UseCase) notifyMatch(ctx context.Context, actor, target *domain.UserProfile) {
	if uc.notifier == nil {
		return
	}
	notification := &domain.Notification{
		UserID:  target.ID,
		Type:    domain.NotificationMatch,
		Message: fmt.Sprintf("New match with %s!", actor.Name),
		Data:    map[string]string{"user_id": actor.ID},
	}
	// The match is already durable; a lost notification is acceptable.
	if err := uc.notifier.Dispatch(ctx, notification); err != nil {
		uc.logger.Warn("match notification dropped",
			zap.String("actor_id", actor.ID),
			zap.String("target_id", target.ID),
			zap.Error(err))
	}
}
