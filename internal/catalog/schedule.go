package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler reloads a catalog on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	catalog *Catalog
	timeout time.Duration
}

// NewScheduler validates schedule ("@hourly", "0 */6 * * *", ...) and registers
// the reload job. Each run is bounded by timeout.
func NewScheduler(c *Catalog, schedule string, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{cron: cron.New(), catalog: c, timeout: timeout}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid RELOAD_SCHEDULE %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.catalog.Reload(ctx); err != nil {
		s.catalog.logger.Error("scheduled reload failed, serving previous snapshot",
			"error", err,
			"loaded_at", s.catalog.LoadedAt(),
		)
	}
}

// Start runs the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running reload to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
