package jobs

import (
	"context"

	"racs-notifier/internal/config"
	"racs-notifier/internal/logger"
	"racs-notifier/internal/pipeline"
)

// RunnerFactory builds a fresh pipeline runner for one batch run. The
// approver mapping is reloaded each time so directory updates are
// picked up between scheduled runs.
type RunnerFactory func() (*pipeline.Runner, error)

// JobRunner coordinates scheduled pipeline runs
type JobRunner struct {
	cfg         *config.Config
	buildRunner RunnerFactory
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(cfg *config.Config, buildRunner RunnerFactory) *JobRunner {
	return &JobRunner{
		cfg:         cfg,
		buildRunner: buildRunner,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.cfg
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// ProcessTickets runs one account-request batch
func (jr *JobRunner) ProcessTickets() {
	jr.runWithRecovery("ProcessTickets", func() {
		runner, err := jr.buildRunner()
		if err != nil {
			logger.Error("Failed to build pipeline", "error", err)
			return
		}

		summary, err := runner.Run(context.Background())
		if err != nil {
			logger.Error("Run aborted", "error", err)
			return
		}

		logger.Info("Ticket batch processed",
			"run_id", summary.RunID,
			"fetched", summary.Fetched,
			"processed", summary.Processed,
			"failed", summary.Failed)
	})
}
