package server

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Purger removes stored sheets older than a maximum age.
type Purger interface {
	Purge(ctx context.Context, maxAge time.Duration) (int, error)
}

// Sweeper is a Service that purges stale character sheets on a fixed interval.
type Sweeper struct {
	purger    Purger
	retention time.Duration
	interval  time.Duration
	logger    *zap.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

// NewSweeper creates a Sweeper that purges sheets idle longer than retention
// every interval.
//
// Precondition: purger and logger must be non-nil; retention and interval must be positive.
func NewSweeper(purger Purger, retention, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		purger:    purger,
		retention: retention,
		interval:  interval,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

// Start sweeps once immediately, then on every tick until Stop is called.
// Purge failures are logged and do not end the service.
func (s *Sweeper) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-s.stop
		cancel()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-s.stop:
			return nil
		}
	}
}

// Stop ends the sweep loop. It is safe to call more than once.
func (s *Sweeper) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Sweep runs a single purge and reports how many sheets it removed.
func (s *Sweeper) Sweep(ctx context.Context) int {
	n, err := s.purger.Purge(ctx, s.retention)
	if err != nil {
		s.logger.Warn("purging stale sheets", zap.Error(err))
		return 0
	}
	if n > 0 {
		s.logger.Info("purged stale sheets",
			zap.Int("count", n),
			zap.Duration("retention", s.retention),
		)
	}
	return n
}
