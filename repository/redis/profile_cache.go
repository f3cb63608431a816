package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/swolemates/backend/domain"
)

// ProfileCache is a read-through cache in front of the user store. Misses
// and marshal errors are silent: the store remains the source of truth.
type ProfileCache struct {
	client *redislib.Client
	ttl    time.Duration
}

func NewProfileCache(client *redislib.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProfileCache{client: client, ttl: ttl}
}

func (c *ProfileCache) Get(ctx context.Context, id string) (*domain.UserProfile, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, profileKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var user domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (c *ProfileCache) Set(ctx context.Context, user *domain.UserProfile) {
	if c == nil || c.client == nil || user == nil || user.ID == "" {
		return
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, profileKey(user.ID), payload, c.ttl).Err()
}

func (c *ProfileCache) Invalidate(ctx context.Context, ids ...string) {
	if c == nil || c.client == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			keys = append(keys, profileKey(id))
		}
	}
	if len(keys) > 0 {
		_ = c.client.Del(ctx, keys...).Err()
	}
}

func profileKey(id string) string {
	return "user:profile:" + id
}
