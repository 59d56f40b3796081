package workers

import (
	"context"
	"log/slog"
	"time"
)

type Sweeper interface {
	SweepStale(ctx context.Context) int
}

// StaleSweeper applies the hazard age policy on a fixed interval.
type StaleSweeper struct {
	sweeper  Sweeper
	interval time.Duration
	logger   *slog.Logger
}

func NewStaleSweeper(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *StaleSweeper {
	return &StaleSweeper{sweeper: sweeper, interval: interval, logger: logger}
}

func (s *StaleSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweeper.SweepStale(ctx); n > 0 {
				s.logger.Debug("stale sweep", slog.Int("changed", n))
			}
		}
	}
}
