package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Reloader is the part of the rental service the scheduler drives.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically re-reads the dataset from its source.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	interval  time.Duration
	log       *zap.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, reloader Reloader, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		reloader:  reloader,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the reload job and starts the underlying scheduler.
// A zero interval leaves the scheduler idle.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("scheduler: reload disabled")
		return nil
	}

	// The initial load happens at startup, so the first run waits a full interval.
	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.log.Info("scheduler: reload scheduled", zap.Duration("interval", s.interval))
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.log.Info("scheduler: reloading dataset")
	if err := s.reloader.Reload(ctx); err != nil {
		s.log.Warn("scheduler: reload failed", zap.Error(err))
		return
	}
	s.log.Info("scheduler: reload completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
