package matching

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

// fakeUserRepo is an in-memory UserRepository with call accounting for the
// paths the matching pipeline exercises.
type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.UserProfile
	lastNear  repository.NearFilter
	savePairs int
}

func newFakeUserRepo(users ...*domain.UserProfile) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.UserProfile)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetMany(_ context.Context, ids []string) ([]domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.UserProfile
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindNear(_ context.Context, filter repository.NearFilter) ([]domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastNear = filter

	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	var out []domain.UserProfile
	for _, u := range r.users {
		if _, skip := excluded[u.ID]; skip {
			continue
		}
		if u.Location.IsZero() {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, user *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) SavePair(ctx context.Context, a, b *domain.UserProfile) error {
	r.mu.Lock()
	r.savePairs++
	r.mu.Unlock()
	if err := r.Save(ctx, a); err != nil {
		return err
	}
	return r.Save(ctx, b)
}

func (r *fakeUserRepo) ResetMonthlyCounters(context.Context) error { return nil }

// fakeLocker counts acquisitions; optionally fails every call.
type fakeLocker struct {
	mu       sync.Mutex
	acquired int
	released int
	fail     bool
}

func (l *fakeLocker) Acquire(context.Context, string, string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail {
		return nil, domain.ErrSwipeContention
	}
	l.acquired++
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released++
	}, nil
}

// fakeNotifier records dispatched notifications.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (n *fakeNotifier) Dispatch(_ context.Context, notification *domain.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *notification)
	return nil
}

func testUser(id string, lng, lat float64) *domain.UserProfile {
	return &domain.UserProfile{
		ID:         id,
		Name:       id,
		Experience: domain.ExperienceIntermediate,
		Schedule:   domain.ScheduleMorning,
		Location:   domain.Point{Longitude: lng, Latitude: lat},
	}
}

func newTestUseCase(repo *fakeUserRepo, locks *fakeLocker, notifier *fakeNotifier) *UseCase {
	return New(repo, nil, locks, notifier, nil, Config{})
}

func TestCandidatesRanksByScoreThenDistance(t *testing.T) {
	ctx := context.Background()

	alice := testUser("alice", -74.0, 40.7)
	alice.Goals = []string{"Strength", "Cardio"}
	alice.Gym = "Iron Temple"

	// Best score: shares goals and gym.
	best := testUser("best", -74.0, 40.75)
	best.Goals = []string{"Strength", "Cardio"}
	best.Gym = "Iron Temple"

	// Lower score, nearer than "best".
	nearer := testUser("nearer", -74.0, 40.71)
	nearer.Goals = []string{"Strength"}

	repo := newFakeUserRepo(alice, best, nearer)
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	candidates, err := uc.Candidates(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "best", candidates[0].User.ID)
	assert.Equal(t, "nearer", candidates[1].User.ID)
	assert.Greater(t, candidates[0].CompatibilityScore, candidates[1].CompatibilityScore)
}

func TestCandidatesTieBreakOnID(t *testing.T) {
	ctx := context.Background()

	alice := testUser("alice", -74.0, 40.7)

	// Identical profiles at the same spot score and rank equally; the id
	// breaks the tie.
	b := testUser("bbb", -74.0, 40.71)
	a := testUser("aaa", -74.0, 40.71)

	repo := newFakeUserRepo(alice, a, b)
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	candidates, err := uc.Candidates(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "aaa", candidates[0].User.ID)
	assert.Equal(t, "bbb", candidates[1].User.ID)
}

func TestCandidatesExcludesSeenUsers(t *testing.T) {
	ctx := context.Background()

	alice := testUser("alice", -74.0, 40.7)
	alice.LikedUsers = []string{"liked"}
	alice.PassedUsers = []string{"passed"}
	alice.Matches = []string{"matched"}

	repo := newFakeUserRepo(
		alice,
		testUser("liked", -74.0, 40.71),
		testUser("passed", -74.0, 40.71),
		testUser("matched", -74.0, 40.71),
		testUser("fresh", -74.0, 40.71),
	)
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	candidates, err := uc.Candidates(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "fresh", candidates[0].User.ID)
	assert.ElementsMatch(t, []string{"alice", "liked", "passed", "matched"}, repo.lastNear.ExcludeIDs)
}

func TestCandidatesSanitizesProfiles(t *testing.T) {
	ctx := context.Background()

	alice := testUser("alice", -74.0, 40.7)
	bob := testUser("bob", -74.0, 40.71)
	bob.Email = "bob@example.com"
	bob.LikedUsers = []string{"someone"}

	repo := newFakeUserRepo(alice, bob)
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	candidates, err := uc.Candidates(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Empty(t, candidates[0].User.Email)
	assert.Nil(t, candidates[0].User.LikedUsers)
}

func TestCandidatesRequiresLocation(t *testing.T) {
	ctx := context.Background()

	alice := &domain.UserProfile{ID: "alice"}
	repo := newFakeUserRepo(alice)
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	_, err := uc.Candidates(ctx, "alice", 0)
	assert.ErrorIs(t, err, domain.ErrMissingLocation)
}

func TestCandidatesClampsLimit(t *testing.T) {
	ctx := context.Background()

	alice := testUser("alice", -74.0, 40.7)
	users := []*domain.UserProfile{alice}
	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		users = append(users, testUser(id, -74.0, 40.71))
	}
	repo := newFakeUserRepo(users...)

	uc := New(repo, nil, &fakeLocker{}, &fakeNotifier{}, nil, Config{CandidateLimit: 3})

	candidates, err := uc.Candidates(ctx, "alice", 100)
	require.NoError(t, err)
	assert.Len(t, candidates, 3)

	candidates, err = uc.Candidates(ctx, "alice", 2)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestSwipeRejectsSelf(t *testing.T) {
	uc := newTestUseCase(newFakeUserRepo(), &fakeLocker{}, &fakeNotifier{})

	_, err := uc.Swipe(context.Background(), "alice", "alice", domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrSelfSwipe)
}

func TestSwipeRejectsUnknownAction(t *testing.T) {
	uc := newTestUseCase(newFakeUserRepo(), &fakeLocker{}, &fakeNotifier{})

	_, err := uc.Swipe(context.Background(), "alice", "bob", domain.SwipeAction("superlike"))
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSwipeLikeWithoutReciprocityIsNotAMatch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(testUser("alice", -74, 40.7), testUser("bob", -74, 40.71))
	locks := &fakeLocker{}
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, locks, notifier)

	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike)
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Nil(t, result.MatchedUser)
	assert.Empty(t, notifier.sent)

	stored, err := repo.GetByID(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stored.HasLiked("bob"))
	assert.Equal(t, 1, locks.acquired)
	assert.Equal(t, 1, locks.released)
}

func TestSwipeMutualLikeCreatesMatch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(testUser("alice", -74, 40.7), testUser("bob", -74, 40.71))
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, &fakeLocker{}, notifier)

	_, err := uc.Swipe(ctx, "bob", "alice", domain.ActionLike)
	require.NoError(t, err)

	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	require.NotNil(t, result.MatchedUser)
	assert.Equal(t, "bob", result.MatchedUser.ID)
	assert.Empty(t, result.MatchedUser.Email)

	// Both sides carry the edge.
	alice, _ := repo.GetByID(ctx, "alice")
	bob, _ := repo.GetByID(ctx, "bob")
	assert.True(t, alice.IsMatchedWith("bob"))
	assert.True(t, bob.IsMatchedWith("alice"))
	assert.Equal(t, 1, repo.savePairs)

	// Exactly one match notification, aimed at the liked-back user.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, domain.NotificationMatch, notifier.sent[0].Type)
	assert.Equal(t, "bob", notifier.sent[0].UserID)
}

func TestSwipeRepeatedLikeOfMatchDoesNotRenotify(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(testUser("alice", -74, 40.7), testUser("bob", -74, 40.71))
	notifier := &fakeNotifier{}
	uc := newTestUseCase(repo, &fakeLocker{}, notifier)

	_, err := uc.Swipe(ctx, "bob", "alice", domain.ActionLike)
	require.NoError(t, err)
	_, err = uc.Swipe(ctx, "alice", "bob", domain.ActionLike)
	require.NoError(t, err)

	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	assert.Len(t, notifier.sent, 1)
	assert.Equal(t, 1, repo.savePairs)
}

func TestSwipePassRecordsDecision(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(testUser("alice", -74, 40.7), testUser("bob", -74, 40.71))
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionPass)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	alice, _ := repo.GetByID(ctx, "alice")
	assert.Contains(t, alice.PassedUsers, "bob")
}

func TestSwipePassThenLikeStillMatches(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(testUser("alice", -74, 40.7), testUser("bob", -74, 40.71))
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	_, err := uc.Swipe(ctx, "bob", "alice", domain.ActionLike)
	require.NoError(t, err)
	_, err = uc.Swipe(ctx, "alice", "bob", domain.ActionPass)
	require.NoError(t, err)

	// A later like overrides the earlier pass.
	result, err := uc.Swipe(ctx, "alice", "bob", domain.ActionLike)
	require.NoError(t, err)
	assert.True(t, result.Matched)
}

func TestSwipeTargetMustExist(t *testing.T) {
	repo := newFakeUserRepo(testUser("alice", -74, 40.7))
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	_, err := uc.Swipe(context.Background(), "alice", "ghost", domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestSwipeSurfacesLockContention(t *testing.T) {
	repo := newFakeUserRepo(testUser("alice", -74, 40.7), testUser("bob", -74, 40.71))
	uc := newTestUseCase(repo, &fakeLocker{fail: true}, &fakeNotifier{})

	_, err := uc.Swipe(context.Background(), "alice", "bob", domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrSwipeContention)
}

func TestMatchesReturnsSanitizedProfiles(t *testing.T) {
	ctx := context.Background()

	alice := testUser("alice", -74, 40.7)
	alice.Matches = []string{"bob"}
	bob := testUser("bob", -74, 40.71)
	bob.Email = "bob@example.com"

	repo := newFakeUserRepo(alice, bob)
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	matches, err := uc.Matches(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "bob", matches[0].ID)
	assert.Empty(t, matches[0].Email)
}

func TestMatchesEmptyForNewUser(t *testing.T) {
	repo := newFakeUserRepo(testUser("alice", -74, 40.7))
	uc := newTestUseCase(repo, &fakeLocker{}, &fakeNotifier{})

	matches, err := uc.Matches(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
