package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/swolemates/backend/domain"
)

// releaseScript deletes the lock only when the caller still owns it, so a
// lock that expired and was re-acquired by someone else is never released
// from under them.
var releaseScript = redislib.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	end
	return 0
`)

// PairLock serializes swipe processing per unordered user pair. Two
// concurrent mutual swipes (A->B, B->A) contend on the same key, which
// keeps the reciprocity check and the two-profile write atomic with
// respect to each other.
type PairLock struct {
	client  *redislib.Client
	ttl     time.Duration
	retries int
	backoff time.Duration
}

// NewPairLock builds a lock manager. The TTL bounds how long a crashed
// holder can block the pair.
func NewPairLock(client *redislib.Client, ttl time.Duration, retries int) *PairLock {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	if retries <= 0 {
		retries = 5
	}
	return &PairLock{
		client:  client,
		ttl:     ttl,
		retries: retries,
		backoff: 50 * time.Millisecond,
	}
}

// Acquire takes the lock for the unordered pair {a, b}. It retries with a
// linear backoff and returns ErrSwipeContention when the pair stays busy.
// The returned release function is safe to call exactly once.
func (l *PairLock) Acquire(ctx context.Context, a, b string) (func(), error) {
	key := pairKey(a, b)
	token := uuid.NewString()

	for attempt := 0; attempt <= l.retries; attempt++ {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeUnavailable, "pair lock unavailable", err)
		}
		if ok {
			release := func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt+1) * l.backoff):
		}
	}
	return nil, domain.ErrSwipeContention
}

func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return "swipe:lock:" + a + ":" + b
}
