package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/repository"
)

type fakeUserRepo struct {
	users map[string]*domain.UserProfile
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

func (r *fakeUserRepo) Save(context.Context, *domain.UserProfile) error { return nil }

func (r *fakeUserRepo) SavePair(context.Context, *domain.UserProfile, *domain.UserProfile) error {
	return nil
}

func (r *fakeUserRepo) ResetMonthlyCounters(context.Context) error { return nil }

type fakeMessageRepo struct {
	created  []domain.Message
	markRead [][2]string
}

func (r *fakeMessageRepo) Create(_ context.Context, m *domain.Message) error {
	r.created = append(r.created, *m)
	return nil
}

func (r *fakeMessageRepo) Conversation(_ context.Context, userA, userB string, _ int) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range r.created {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, senderID, receiverID string) error {
	r.markRead = append(r.markRead, [2]string{senderID, receiverID})
	return nil
}

type fakeNotifier struct {
	sent []domain.Notification
}

func (n *fakeNotifier) Dispatch(_ context.Context, notification *domain.Notification) error {
	n.sent = append(n.sent, *notification)
	return nil
}

func matchedPair() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.UserProfile{
		"alice": {ID: "alice", Name: "Alice", Matches: []string{"bob"}},
		"bob":   {ID: "bob", Name: "Bob", Matches: []string{"alice"}},
		"carol": {ID: "carol", Name: "Carol"},
	}}
}

func TestSendDeliversBetweenMatchedUsers(t *testing.T) {
	messages := &fakeMessageRepo{}
	notifier := &fakeNotifier{}
	uc := New(messages, matchedPair(), notifier, nil)

	msg, err := uc.Send(context.Background(), "alice", "bob", "  see you at the gym  ")
	require.NoError(t, err)
	assert.Equal(t, "see you at the gym", msg.Content)
	require.Len(t, messages.created, 1)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, domain.NotificationMessage, notifier.sent[0].Type)
	assert.Equal(t, "bob", notifier.sent[0].UserID)
	assert.Equal(t, "alice", notifier.sent[0].Data["user_id"])
}

func TestSendRejectsUnmatchedPair(t *testing.T) {
	uc := New(&fakeMessageRepo{}, matchedPair(), &fakeNotifier{}, nil)

	_, err := uc.Send(context.Background(), "alice", "carol", "hey")
	assert.ErrorIs(t, err, domain.ErrNotMatched)
}

func TestSendRejectsEmptyContent(t *testing.T) {
	uc := New(&fakeMessageRepo{}, matchedPair(), &fakeNotifier{}, nil)

	_, err := uc.Send(context.Background(), "alice", "bob", "   ")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSendRejectsSelf(t *testing.T) {
	uc := New(&fakeMessageRepo{}, matchedPair(), &fakeNotifier{}, nil)

	_, err := uc.Send(context.Background(), "alice", "alice", "hello me")
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestSendRequiresExistingReceiver(t *testing.T) {
	uc := New(&fakeMessageRepo{}, matchedPair(), &fakeNotifier{}, nil)

	_, err := uc.Send(context.Background(), "alice", "ghost", "anyone there?")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestConversationRequiresExistingUser(t *testing.T) {
	uc := New(&fakeMessageRepo{}, matchedPair(), &fakeNotifier{}, nil)

	_, err := uc.Conversation(context.Background(), "alice", "ghost", 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestConversationReturnsBothDirections(t *testing.T) {
	messages := &fakeMessageRepo{}
	uc := New(messages, matchedPair(), &fakeNotifier{}, nil)
	ctx := context.Background()

	_, err := uc.Send(ctx, "alice", "bob", "morning session?")
	require.NoError(t, err)
	_, err = uc.Send(ctx, "bob", "alice", "7am works")
	require.NoError(t, err)

	conv, err := uc.Conversation(ctx, "alice", "bob", 0)
	require.NoError(t, err)
	assert.Len(t, conv, 2)
}

func TestMarkReadFlagsIncomingMessages(t *testing.T) {
	messages := &fakeMessageRepo{}
	uc := New(messages, matchedPair(), &fakeNotifier{}, nil)

	require.NoError(t, uc.MarkRead(context.Background(), "alice", "bob"))

	// Messages bob sent to alice are the ones being acknowledged.
	require.Len(t, messages.markRead, 1)
	assert.Equal(t, [2]string{"bob", "alice"}, messages.markRead[0])
}
