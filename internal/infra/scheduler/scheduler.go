package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job is one unit of work run on every tick.
type Job func(ctx context.Context)

// PollScheduler runs a job, waits until the schedule's next activation and
// repeats. Ticks never overlap: the wait starts only after the job returns.
type PollScheduler struct {
	schedule cron.Schedule
	job      Job
	logger   *logrus.Entry
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewPollScheduler(schedule cron.Schedule, job Job, logger *logrus.Entry) *PollScheduler {
	return &PollScheduler{
		schedule: schedule,
		job:      job,
		logger:   logger,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Run executes the job immediately and then on every scheduled tick until
// ctx is cancelled. It returns ctx.Err().
func (s *PollScheduler) Run(ctx context.Context) error {
	s.logger.Info("Starting poll scheduler...")
	for {
		s.job(ctx)

		now := s.now()
		wait := s.schedule.Next(now).Sub(now)
		if wait < 0 {
			wait = 0
		}
		s.logger.WithField("next_tick_in", wait.String()).Debug("Waiting for next tick")

		if err := s.sleep(ctx, wait); err != nil {
			s.logger.Info("Poll scheduler stopped.")
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
