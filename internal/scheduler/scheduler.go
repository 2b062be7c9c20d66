package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher reloads the weather for the last location.
type Refresher interface {
	Refresh(ctx context.Context)
}

// Scheduler periodically refreshes the screen in the background.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. timeout bounds a single refresh.
func New(target Refresher, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. A
// zero interval disables auto-refresh.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: auto-refresh disabled")
		return nil
	}

	// the screen is loaded by Mount at startup, so the first run waits a full interval
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler: auto-refresh started", "interval", s.interval)
	return nil
}

func (s *Scheduler) run() {
	s.logger.Debug("scheduler: running refresh job")

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.target.Refresh(ctx)

	s.logger.Debug("scheduler: completed refresh job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
