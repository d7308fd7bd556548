package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CycleRunner performs one poll cycle. Errors are already handled by the
// runner; the scheduler only logs them at debug level.
type CycleRunner interface {
	RunCycle(ctx context.Context) error
}

// PollScheduler runs cycles back to back with a fixed sleep in between.
// The delay is the same after success and after failure.
type PollScheduler struct {
	runner   CycleRunner
	schedule cron.ConstantDelaySchedule
	logger   *logrus.Entry

	sleep func(ctx context.Context, d time.Duration) error
}

func NewPollScheduler(runner CycleRunner, interval time.Duration, logger *logrus.Entry) *PollScheduler {
	return &PollScheduler{
		runner:   runner,
		schedule: cron.Every(interval), // whole seconds; config rejects anything finer
		logger:   logger,
		sleep:    sleepContext,
	}
}

// Run does an immediate cycle, then one cycle after every sleep.
// Stops when ctx is cancelled.
func (s *PollScheduler) Run(ctx context.Context) {
	s.logger.WithField("interval", s.schedule.Delay.String()).Info("Starting poll loop")

	for {
		if ctx.Err() != nil {
			break
		}
		if err := s.runner.RunCycle(ctx); err != nil {
			s.logger.WithError(err).Debug("Cycle finished with error")
		}

		// Next(now) would subtract the sub-second part of the clock; the
		// delay itself is the same after every cycle.
		delay := s.schedule.Delay
		s.logger.WithField("next_poll_in", delay.String()).Debug("Sleeping until next cycle")
		if err := s.sleep(ctx, delay); err != nil {
			break
		}
	}

	s.logger.Info("Poll loop stopped")
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
