package jobs

import (
	"context"
	"log/slog"

	"coffeeshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AutoBatchJob runs the bulk batching policy on a schedule, sweeping up
// ready delivery orders that immediate batching left behind.
type AutoBatchJob struct {
	handler commands.AutoBatchOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAutoBatchJob creates a job that auto-batches orders once a minute.
func NewAutoBatchJob(handler commands.AutoBatchOrdersCommandHandler, logger *slog.Logger) *AutoBatchJob {
	return &AutoBatchJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "auto_batch_job"),
	}
}

// Start begins the auto-batch job, running at the top of every minute.
func (j *AutoBatchJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAutoBatchOrdersCommand()

		ids, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-batch job failed", "error", err)
			return
		}

		if len(ids) > 0 {
			j.logger.InfoContext(ctx, "Auto-batch job created deliveries", "count", len(ids))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Auto-batch job started (running every minute)")
	return nil
}

// Stop stops the auto-batch job.
func (j *AutoBatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Auto-batch job stopped")
}
