package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swolemates/backend/domain"
)

func TestSessionSaveAndGet(t *testing.T) {
	repo := NewSessionRepository(testRedis(t), time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "s1",
		UserID:    "alice",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserID)
	assert.False(t, got.IsExpired(time.Now()))
}

func TestSessionGetMissing(t *testing.T) {
	repo := NewSessionRepository(testRedis(t), time.Hour)

	_, err := repo.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionDelete(t *testing.T) {
	repo := NewSessionRepository(testRedis(t), time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.Session{ID: "s1", UserID: "alice"}))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionSaveRejectsEmptyID(t *testing.T) {
	repo := NewSessionRepository(testRedis(t), time.Hour)

	err := repo.Save(context.Background(), &domain.Session{UserID: "alice"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
}
