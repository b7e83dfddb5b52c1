package warmup

import (
	"context"
	"log/slog"
	"time"
)

// Refresher recomputes a cached report.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler keeps the unfiltered network report warm by refreshing it on an interval.
// Failures are logged and retried on the next tick.
type Scheduler struct {
	interval  time.Duration
	timeout   time.Duration
	refresher Refresher
}

// NewScheduler creates a warmer. timeout bounds each refresh; zero means the
// refresh may run until the next tick is due.
func NewScheduler(interval, timeout time.Duration, refresher Refresher) *Scheduler {
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &Scheduler{
		interval:  interval,
		timeout:   timeout,
		refresher: refresher,
	}
}

// Start refreshes once immediately, then on every tick until ctx is cancelled.
// A non-positive interval disables the warmer and Start returns at once.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		slog.Info("[Warmup] Report warmer disabled")
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("[Warmup] Starting report warmer", "interval", s.interval, "timeout", s.timeout)

	failures := 0
	s.runOnce(ctx, &failures)

	for {
		select {
		case <-ticker.C:
			s.runOnce(ctx, &failures)
		case <-ctx.Done():
			slog.Info("[Warmup] Stopping (context cancelled)")
			return nil
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, failures *int) {
	if ctx.Err() != nil {
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.refresher.Refresh(runCtx); err != nil {
		*failures++
		slog.Error("[Warmup] Report refresh failed",
			"error", err,
			"consecutive_failures", *failures,
			"note", "Will retry on next tick",
		)
		return
	}

	if *failures > 0 {
		slog.Info("[Warmup] Report refresh recovered", "after_failures", *failures)
	}
	*failures = 0
	slog.Debug("[Warmup] Report refreshed", "duration_ms", time.Since(start).Milliseconds())
}
