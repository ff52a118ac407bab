package jobs

import (
	"fmt"
	"log/slog"

	"parceltrack/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	statsSnapshotJob *StatsSnapshotJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	statsHandler queries.GetParcelStatsQueryHandler,
	logger *slog.Logger,
) (*JobManager, error) {
	statsSnapshotJob, err := NewStatsSnapshotJob(statsHandler, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create stats snapshot job: %w", err)
	}

	return &JobManager{
		statsSnapshotJob: statsSnapshotJob,
	}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.statsSnapshotJob.Start(); err != nil {
		return fmt.Errorf("failed to start stats snapshot job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statsSnapshotJob.Stop()
}
