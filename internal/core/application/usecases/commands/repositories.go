// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries; in
// particular, an order status write and its audit record always share one
// transaction.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderLogRepoFactory provides access to the audit log repository within a transaction.
	OrderLogRepoFactory interface {
		OrderLogRepository() ports.OrderLogRepository
	}

	// JobRepoFactory provides access to the job repository within a transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// OrderUoW manages transactions for order-and-audit operations.
	// Used by commands that mutate order state: every such mutation writes
	// the order and its audit record as one unit.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderLogRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// UoW manages transactions across order, audit log, and job aggregates.
	// Used by the confirmation workflow, which coordinates changes between
	// the order being confirmed and the job tracking the attempt.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   jobRepo := uow.JobRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		OrderLogRepoFactory
		JobRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)

// ConfirmationDispatcher hands a committed job to the asynchronous executor.
// Dispatch must not block on the job's execution: the confirmation request
// returns as soon as the job is persisted and handed over.
type ConfirmationDispatcher interface {
	Dispatch(aggregate *job.Job)
}
