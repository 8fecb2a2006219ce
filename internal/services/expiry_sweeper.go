package services

import (
	"context"
	"time"

	"github.com/fitcenter/backend/internal/logger"
	"github.com/fitcenter/backend/internal/metrics"
)

// ExpirySweeper periodically marks stale pending requests expired. It keeps
// listings tidy; reads expire requests lazily with or without it.
type ExpirySweeper struct {
	store    Store
	interval time.Duration
	metrics  *metrics.PointsMetrics
	log      *logger.Logger
	now      func() time.Time
}

func NewExpirySweeper(store Store, interval time.Duration, m *metrics.PointsMetrics, log *logger.Logger) *ExpirySweeper {
	if log == nil {
		log = logger.Nop()
	}
	return &ExpirySweeper{store: store, interval: interval, metrics: m, log: log, now: time.Now}
}

// Run blocks until ctx is done. A non-positive interval disables sweeping.
func (s *ExpirySweeper) Run(ctx context.Context) {
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
			s.Sweep(ctx)
		}
	}
}

func (s *ExpirySweeper) Sweep(ctx context.Context) int {
	n, err := s.store.ExpireStale(ctx, s.now())
	if err != nil {
		s.log.Error(ctx, "expire stale redemption requests", err)
		return 0
	}
	if n > 0 {
		s.metrics.AddExpired(n)
		s.log.Zerolog(ctx).Debug().Int("expired", n).Msg("swept redemption requests")
	}
	return n
}
