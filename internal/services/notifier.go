package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/internal/infrastructure/outbox"
	"github.com/swolemates/backend/internal/metrics"
	"github.com/swolemates/backend/repository"
)

// ConnectionHealth abstracts the connection monitor functionality.
type ConnectionHealth interface {
	IsOnline() bool
}

// RealtimePublisher abstracts the push edge so the dispatcher can run
// without a broker in tests.
type RealtimePublisher interface {
	PublishNotify(userID string, payload interface{}) error
}

// DispatcherConfig controls how the outbox is drained.
type DispatcherConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// NotificationDispatcher persists notifications, pushes them to the
// realtime edge, and parks undeliverable ones in the outbox for retry.
// Delivery is strictly best-effort: callers treat a dispatch error as
// non-fatal to the business operation that triggered it.
type NotificationDispatcher struct {
	store     *outbox.Store
	monitor   ConnectionHealth
	notifRepo repository.NotificationRepository
	publisher RealtimePublisher
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       DispatcherConfig
}

func NewNotificationDispatcher(
	store *outbox.Store,
	monitor ConnectionHealth,
	notifRepo repository.NotificationRepository,
	publisher RealtimePublisher,
	logger *zap.Logger,
	cfg DispatcherConfig,
) *NotificationDispatcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &NotificationDispatcher{
		store:     store,
		monitor:   monitor,
		notifRepo: notifRepo,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = d.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := d.Drain(ctx); err != nil {
			d.logger.Error("outbox drain failed", zap.Error(err))
		}
	})

	return d
}

// Start launches the cron scheduler.
func (d *NotificationDispatcher) Start() {
	if d == nil || d.cron == nil {
		return
	}
	d.cron.Start()
	d.logger.Info("notification dispatcher started")
}

// Stop gracefully stops the scheduler.
func (d *NotificationDispatcher) Stop(ctx context.Context) {
	if d == nil || d.cron == nil {
		return
	}
	stopCtx := d.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	d.logger.Info("notification dispatcher stopped")
}

// Dispatch persists the notification and pushes it to the realtime edge.
// When the store is unreachable the event is parked in the outbox instead
// of being lost; the error is still returned so callers can log it.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, n *domain.Notification) error {
	if d == nil || n == nil {
		return domain.ErrInvalidPayload
	}

	if err := d.deliver(ctx, n); err != nil {
		d.logger.Warn("notification delivery failed, parking in outbox",
			zap.String("user_id", n.UserID),
			zap.String("type", string(n.Type)),
			zap.Error(err))
		if parkErr := d.park(n); parkErr != nil {
			d.logger.Error("failed to park notification", zap.Error(parkErr))
			return parkErr
		}
		metrics.NotificationsTotal.WithLabelValues("parked").Inc()
		return nil
	}

	metrics.NotificationsTotal.WithLabelValues("delivered").Inc()
	return nil
}

// Drain retries parked notifications while the store is online.
func (d *NotificationDispatcher) Drain(ctx context.Context) error {
	if d == nil || d.store == nil {
		return nil
	}
	if d.monitor != nil && !d.monitor.IsOnline() {
		d.logger.Debug("skipping outbox drain (offline)")
		return nil
	}

	items, err := d.store.GetBatch(d.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, item := range items {
		var n domain.Notification
		if err := json.Unmarshal(item.Payload, &n); err != nil {
			_ = d.store.Remove(item)
			continue
		}

		if err := d.deliver(ctx, &n); err != nil {
			item.Retries++
			if item.Retries >= d.cfg.MaxRetries {
				d.logger.Warn("dropping notification (max retries reached)",
					zap.String("item_id", item.ID),
					zap.String("user_id", n.UserID))
				metrics.NotificationsTotal.WithLabelValues("dropped").Inc()
				_ = d.store.Remove(item)
				continue
			}
			if err := d.store.Requeue(item); err != nil {
				d.logger.Error("failed to requeue notification", zap.Error(err))
			}
			continue
		}

		metrics.NotificationsTotal.WithLabelValues("delivered").Inc()
		if err := d.store.Remove(item); err != nil {
			d.logger.Warn("failed to purge delivered notification", zap.Error(err))
		}
	}
	return nil
}

func (d *NotificationDispatcher) deliver(ctx context.Context, n *domain.Notification) error {
	if err := d.notifRepo.Create(ctx, n); err != nil {
		return err
	}
	// The realtime push is fire-and-forget: the persisted row is the
	// source of truth and the client polls on reconnect.
	if d.publisher != nil {
		if err := d.publisher.PublishNotify(n.UserID, n); err != nil {
			d.logger.Warn("realtime push failed", zap.String("user_id", n.UserID), zap.Error(err))
		}
	}
	return nil
}

func (d *NotificationDispatcher) park(n *domain.Notification) error {
	if d.store == nil {
		return fmt.Errorf("outbox not configured")
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return d.store.Enqueue(outbox.Item{
		ID:      n.ID,
		UserID:  n.UserID,
		Payload: payload,
	})
}
