package scheduler

import (
	"context"
	"time"

	"github.com/attendly/backend/internal/config"
	"github.com/attendly/backend/internal/repository"
	"github.com/attendly/backend/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	autoCheckoutSpec = "59 23 * * *"
	reminderSpec     = "0 8-10 * * 1-5"
	absenceSpec      = "0 20 * * 1-5"

	// Pause between processed rows so a large backlog does not hammer the
	// store.
	perRowDelay = 100 * time.Millisecond
)

// Scheduler owns the time-driven jobs: nightly auto-checkout of open
// attendance records and the check-in reminder/absence notices. Each job is
// registered once on a single cron instance, so runs never overlap.
type Scheduler struct {
	repos *repository.Repositories
	cfg   *config.Config
	loc   *time.Location
	cron  *cron.Cron
}

func New(repos *repository.Repositories, cfg *config.Config) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Attendance.TimeZone)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		repos: repos,
		cfg:   cfg,
		loc:   loc,
		cron:  cron.New(cron.WithLocation(loc)),
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	jobs := []struct {
		spec string
		run  func(context.Context)
	}{
		{autoCheckoutSpec, s.runAutoCheckout},
		{reminderSpec, s.runReminders},
		{absenceSpec, s.runAbsenceCheck},
	}

	for _, job := range jobs {
		run := job.run
		if _, err := s.cron.AddFunc(job.spec, func() { run(ctx) }); err != nil {
			return err
		}
	}

	s.cron.Start()
	logger.Info("scheduler started",
		zap.String("timezone", s.loc.String()))

	return nil
}

// Stop waits for a running job to finish before returning.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped")
}
