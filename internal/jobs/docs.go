// Package jobs provides the background machinery of the confirmation
// workflow.
//
// Two components run outside the request/response cycle:
//
//  1. ConfirmationDispatcher - a bounded worker pool that executes
//     committed confirmation jobs; dispatching never blocks the caller
//  2. PendingJobsSweepJob - a cron-based sweep (github.com/robfig/cron/v3)
//     that re-dispatches jobs committed but orphaned before hand-off
//
// # Usage
//
// Both are managed through JobManager, which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatcher, sweep)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Delivery guarantees
//
// Dispatch-after-commit plus the sweep gives at-least-once execution per
// job within a single process lifecycle; the conditional pending -> running
// claim in the workflow engine reduces that to exactly-one effective
// execution.
package jobs
