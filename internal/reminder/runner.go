package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Runner sweeps the scheduler on a fixed interval.
type Runner struct {
	scheduler *Scheduler
	interval  time.Duration
	now       func() time.Time

	cron   gocron.Scheduler
	cancel context.CancelFunc
}

func NewRunner(s *Scheduler, interval time.Duration) *Runner {
	return &Runner{scheduler: s, interval: interval, now: time.Now}
}

func (r *Runner) Start(ctx context.Context) error {
	if r.cron != nil {
		return nil
	}
	cron, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create reminder scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	_, err = cron.NewJob(
		gocron.DurationJob(r.interval),
		gocron.NewTask(func() {
			r.scheduler.Sweep(ctx, r.now())
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		_ = cron.Shutdown()
		return fmt.Errorf("failed to register reminder sweep: %w", err)
	}

	cron.Start()
	r.cron = cron
	r.cancel = cancel
	slog.Info("reminder runner started", "interval", r.interval)
	return nil
}

func (r *Runner) Stop() error {
	if r.cron == nil {
		return nil
	}
	r.cancel()
	err := r.cron.Shutdown()
	r.cron = nil
	slog.Info("reminder runner stopped")
	return err
}
