package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper periodically evicts quiz sessions nobody touched for a while.
type SessionSweeper struct {
	sessions SessionStorage
	schedule string
	idleTTL  time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

// NewSessionSweeper creates a sweeper running on a cron schedule (e.g. "@every 5m").
func NewSessionSweeper(sessions SessionStorage, schedule string, idleTTL time.Duration, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		schedule: schedule,
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   logger,
	}
}

// Start runs the sweep job until ctx is done.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.Sweep()
	})
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("idle_ttl", s.idleTTL),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")

	return nil
}

// Sweep evicts idle sessions once and returns how many were removed.
func (s *SessionSweeper) Sweep() int {
	removed := s.sessions.Sweep(s.now().Add(-s.idleTTL))
	if removed > 0 {
		s.logger.Info("idle sessions evicted",
			zap.Int("removed", removed),
			zap.Int("remaining", s.sessions.Len()),
		)
	}
	return removed
}
