// Package scheduler runs the recurring sync triggers: products hourly,
// categories daily. Jobs funnel into the orchestrator and are serialized by
// its run lock, so an overlapping trigger is skipped, not queued.
package scheduler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/sync"
)

// Cron expressions for the two standing triggers
const (
	ScheduleProducts   = "0 * * * *"  // hourly
	ScheduleCategories = "30 4 * * *" // daily, off-peak
)

// Scheduler manages the recurring sync jobs
type Scheduler struct {
	cron    *cron.Cron
	service *sync.Service
}

// New creates a scheduler with the standing product and category jobs
// registered.
func New(service *sync.Service) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		service: service,
	}

	if _, err := s.cron.AddFunc(ScheduleProducts, func() { s.trigger(false, true) }); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(ScheduleCategories, func() { s.trigger(true, false) }); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins firing scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// trigger runs one sync pass. Lock contention means a run is already in
// flight, which is expected when a manual run overlaps the schedule.
func (s *Scheduler) trigger(categories, products bool) {
	summary, err := s.service.RunManualSync(context.Background(), categories, products)
	if err != nil {
		if errors.Is(err, domain.ErrLockHeld) {
			slog.Default().Info("scheduled sync skipped, run already in progress")
			return
		}
		slog.Default().Error("scheduled sync failed", "error", err.Error())
		return
	}

	slog.Default().Info("scheduled sync finished",
		"created", summary.Created,
		"updated", summary.Updated,
		"errors", summary.Errors,
		"categories", summary.Categories,
	)
}
