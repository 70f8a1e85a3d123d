package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	staleLocationJob *StaleLocationJob
}

// NewJobManager creates a job manager. A non-positive staleAfter disables the
// stale location sweep.
func NewJobManager(
	releaseStale staleReleaser,
	staleSchedule string,
	staleAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if staleAfter > 0 {
		jm.staleLocationJob = NewStaleLocationJob(releaseStale, staleSchedule, staleAfter, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.staleLocationJob == nil {
		return nil
	}
	if err := jm.staleLocationJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale location job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.staleLocationJob != nil {
		jm.staleLocationJob.Stop()
	}
}
