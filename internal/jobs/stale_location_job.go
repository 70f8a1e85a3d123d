package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DefaultStaleSweepSchedule runs the sweep once a minute, on the minute.
const DefaultStaleSweepSchedule = "0 * * * * *"

type staleReleaser interface {
	Handle(ctx context.Context, cmd commands.ReleaseStaleDeliveryPersonsCommand) ([]kernel.UUID, error)
}

// StaleLocationJob periodically takes available delivery persons whose last
// location report is older than maxAge out of the pool.
type StaleLocationJob struct {
	handler  staleReleaser
	schedule string
	maxAge   time.Duration
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleLocationJob creates the sweep. schedule is a six-field cron
// expression (seconds first); an empty schedule means DefaultStaleSweepSchedule.
func NewStaleLocationJob(
	handler staleReleaser,
	schedule string,
	maxAge time.Duration,
	logger *slog.Logger,
) *StaleLocationJob {
	if schedule == "" {
		schedule = DefaultStaleSweepSchedule
	}
	return &StaleLocationJob{
		handler:  handler,
		schedule: schedule,
		maxAge:   maxAge,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "stale_location_job"),
	}
}

// Start registers the sweep with the scheduler and starts it.
func (j *StaleLocationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Stale location job started", "schedule", j.schedule, "max_age", j.maxAge)
	return nil
}

// RunOnce performs a single sweep. Failures are logged, never returned, so a
// bad tick does not stop the schedule.
func (j *StaleLocationJob) RunOnce(ctx context.Context) {
	cmd, err := commands.NewReleaseStaleDeliveryPersonsCommand(j.maxAge, j.now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale location job misconfigured", "error", err)
		return
	}

	released, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale location job failed", "error", err)
		return
	}
	if len(released) > 0 {
		j.logger.InfoContext(ctx, "Released stale delivery persons", "count", len(released))
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *StaleLocationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Stale location job stopped")
}
