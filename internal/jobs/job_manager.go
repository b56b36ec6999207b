package jobs

import (
	"fmt"
)

// JobManager coordinates the background machinery of the confirmation
// workflow: the dispatcher worker pool and the reconciliation sweep.
// Provides a unified interface to start and stop both with the process
// lifecycle.
type JobManager struct {
	dispatcher *ConfirmationDispatcher
	sweep      *PendingJobsSweepJob
}

// NewJobManager creates a job manager over the given dispatcher and sweep.
func NewJobManager(dispatcher *ConfirmationDispatcher, sweep *PendingJobsSweepJob) *JobManager {
	return &JobManager{
		dispatcher: dispatcher,
		sweep:      sweep,
	}
}

// StartAll starts the dispatcher and the sweep.
// Returns an error if the sweep fails to start.
func (jm *JobManager) StartAll() error {
	jm.dispatcher.Start()

	if err := jm.sweep.Start(); err != nil {
		jm.dispatcher.Stop()
		return fmt.Errorf("failed to start pending jobs sweep: %w", err)
	}

	return nil
}

// StopAll stops the sweep first so no new work arrives, then drains the
// dispatcher.
func (jm *JobManager) StopAll() {
	jm.sweep.Stop()
	jm.dispatcher.Stop()
}
