package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"llm-trade-journal/internal/logger"
)

// Job is a unit of scheduled work.
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler runs jobs on six-field (seconds-first) cron schedules in a fixed timezone.
type Scheduler struct {
	cron *cron.Cron
}

func New(loc *time.Location) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	logger.Info(ctx, "Scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	<-s.cron.Stop().Done()
	logger.Info(ctx, "Scheduler stopped")
}

// AddJob registers job under schedule. Examples:
//   - "0 40 15 * * MON-FRI" - 15:40 on weekdays
//   - "@every 30s"          - every 30 seconds
func (s *Scheduler) AddJob(ctx context.Context, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.run(context.WithoutCancel(ctx), job)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "Job registered", "schedule", schedule, "job", job.Name())
	return nil
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(ctx context.Context, job Job) error {
	logger.Info(ctx, "Running job immediately", "job", job.Name())
	return job.Run(ctx)
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	op := logger.StartOperation(ctx, "job."+job.Name())
	if err := job.Run(op.GetContext()); err != nil {
		op.EndWithError(err, "job", job.Name())
		return
	}
	op.End("job", job.Name())
}
