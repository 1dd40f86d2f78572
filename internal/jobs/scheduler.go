// Package jobs runs periodic maintenance on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"saathi/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// SessionPurger deletes expired sessions and reports how many were removed.
type SessionPurger interface {
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// Scheduler wraps a cron runner. Overlapping runs of the same job are
// skipped.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// AddSessionPurge schedules purger with a standard cron spec or a
// descriptor such as "@every 1h".
func (s *Scheduler) AddSessionPurge(spec string, purger SessionPurger) error {
	if _, err := s.cron.AddFunc(spec, func() { RunSessionPurge(context.Background(), purger) }); err != nil {
		return fmt.Errorf("invalid session purge schedule %q: %w", spec, err)
	}
	logger.Get().Info("Session purge job scheduled", zap.String("spec", spec))
	return nil
}

// RunSessionPurge performs one purge. Failures are logged; the next tick
// retries.
func RunSessionPurge(ctx context.Context, purger SessionPurger) int64 {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := purger.PurgeExpiredSessions(ctx)
	if err != nil {
		logger.Get().Error("Session purge failed", zap.Error(err))
		return 0
	}
	logger.Get().Info("Expired sessions purged", zap.Int64("count", n))
	return n
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and blocks until running jobs finish or ctx ends.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Get().Warn("Timed out waiting for scheduled jobs to finish")
	}
}

// Entries reports the number of scheduled jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
