// Package job provides domain entities for asynchronous order confirmation
// in the rental platform. It implements the Job aggregate root that tracks
// one confirmation attempt from creation to its terminal state.
//
// The package includes:
//   - Job: The aggregate root binding a confirmation attempt to an order
//   - Status: A state machine for the job lifecycle (pending -> running -> terminal)
//
// Key business rules:
//   - Jobs are identified by an application-minted UUID
//   - A job is claimed exactly once: the pending -> running transition is a
//     conditional update, so duplicate executors lose the claim cleanly
//   - Every job ends in exactly one terminal state (succeeded or failed)
//     with a machine-readable result; failures never propagate to callers
package job
