package jobs

import (
	"context"
	"log/slog"
	"time"

	"rentalorders/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// PendingJobsSweepJob re-dispatches confirmation jobs that were committed
// but never handed to an executor, typically because the process restarted
// between the commit and the hand-off. The conditional pending -> running
// claim makes re-dispatching an already-executing job harmless, so the
// sweep can afford to be aggressive.
type PendingJobsSweepJob struct {
	jobs       ports.JobRepository
	dispatcher *ConfirmationDispatcher
	threshold  time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewPendingJobsSweepJob creates a sweep over the given job repository.
// Jobs still pending after the threshold are considered orphaned.
func NewPendingJobsSweepJob(
	jobs ports.JobRepository,
	dispatcher *ConfirmationDispatcher,
	threshold time.Duration,
	logger *slog.Logger,
) *PendingJobsSweepJob {
	return &PendingJobsSweepJob{
		jobs:       jobs,
		dispatcher: dispatcher,
		threshold:  threshold,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "pending_jobs_sweep"),
	}
}

// Start begins the sweep, running every 30 seconds.
func (j *PendingJobsSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().UTC().Add(-j.threshold)

		pending, err := j.jobs.GetAllPendingBefore(ctx, cutoff)
		if err != nil {
			j.logger.ErrorContext(ctx, "pending jobs sweep failed", "error", err)
			return
		}

		for _, orphan := range pending {
			j.logger.InfoContext(ctx, "re-dispatching orphaned confirmation job",
				"jobId", orphan.ID().String(), "orderId", orphan.OrderID())
			j.dispatcher.Dispatch(orphan)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("pending jobs sweep started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep.
func (j *PendingJobsSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("pending jobs sweep stopped")
}
