package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/swolemates/backend/repository"
)

// StatsResetJob zeroes every profile's monthly workout counter at the
// start of each month.
type StatsResetJob struct {
	users  repository.UserRepository
	logger *zap.Logger
	cron   *cron.Cron
}

func NewStatsResetJob(users repository.UserRepository, logger *zap.Logger) *StatsResetJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	j := &StatsResetJob{
		users:  users,
		logger: logger,
		cron:   cron.New(),
	}

	// Midnight on the first of every month.
	_, _ = j.cron.AddFunc("0 0 1 * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := j.users.ResetMonthlyCounters(ctx); err != nil {
			j.logger.Error("monthly stats reset failed", zap.Error(err))
			return
		}
		j.logger.Info("monthly workout counters reset")
	})

	return j
}

func (j *StatsResetJob) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
}

func (j *StatsResetJob) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
}
