package jobs

import (
	"fmt"
	"log/slog"

	"coffeeshop/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	autoBatchJob *AutoBatchJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	autoBatchHandler commands.AutoBatchOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		autoBatchJob: NewAutoBatchJob(autoBatchHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.autoBatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start auto-batch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.autoBatchJob.Stop()
}
