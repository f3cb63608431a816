// Package monitor periodically probes the service dependencies and caches
// the result for the health endpoint and the outbox drain gate.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/swolemates/backend/internal/infrastructure/outbox"
	"github.com/swolemates/backend/internal/messaging"
)

// Monitor runs background connectivity checks against postgres, redis and
// NATS, and tracks the outbox backlog.
type Monitor struct {
	pool     *pgxpool.Pool
	redis    *redislib.Client
	nats     *messaging.NATSClient
	outbox   *outbox.Store
	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status

	stopCh chan struct{}
	doneCh chan struct{}
}

func New(pool *pgxpool.Pool, redis *redislib.Client, nats *messaging.NATSClient, box *outbox.Store, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		pool:     pool,
		redis:    redis,
		nats:     nats,
		outbox:   box,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the probe loop.
func (m *Monitor) Start() {
	m.check()
	go func() {
		defer close(m.doneCh)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.check()
			}
		}
	}()
}

// Stop terminates the probe loop and waits for it to exit.
func (m *Monitor) Stop() {
	close(m.stopCh)
	<-m.doneCh
}

// GetStatus returns the latest probe snapshot.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// IsOnline reports whether the primary store is reachable. The outbox
// drain is gated on this so retries do not pile up during an outage.
func (m *Monitor) IsOnline() bool {
	return m.GetStatus().PostgreSQL
}

func (m *Monitor) check() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	status := Status{LastCheck: time.Now()}

	if m.pool != nil {
		status.PostgreSQL = m.pool.Ping(ctx) == nil
	}
	if m.redis != nil {
		status.Redis = m.redis.Ping(ctx).Err() == nil
	}
	if m.nats != nil {
		status.NATS = m.nats.IsConnected()
	}
	if m.outbox != nil {
		if size, err := m.outbox.Size(); err == nil {
			status.OutboxSize = size
		}
	}

	if !status.PostgreSQL {
		m.logger.Warn("postgres unreachable")
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
