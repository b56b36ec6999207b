package memstore

import (
	"context"
	"errors"

	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback when the unit
// of work has no open transaction.
var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWorkFactory creates in-memory unit of work instances over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the given store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork instance ready for one transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages writes against the store and applies them on Commit.
// Begin takes the store's write lock, making the store single-writer: the
// conditional checks a repository performs inside the transaction cannot be
// invalidated before Commit. Rollback discards the overlay untouched.
type UnitOfWork struct {
	store  *Store
	active bool

	stagedOrders map[int64]orderRecord
	stagedLogs   []logRecord
	stagedJobs   map[kernel.UUID]jobRecord
}

// Begin opens the transaction and blocks until the store's write lock is
// available. Calling Begin on an already-open unit of work is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.store.mu.Lock()
	uow.active = true
	uow.stagedOrders = make(map[int64]orderRecord)
	uow.stagedLogs = nil
	uow.stagedJobs = make(map[kernel.UUID]jobRecord)
	return nil
}

// Commit merges every staged write into the store and releases the lock.
// The merge cannot fail partway: all validation happened when the writes
// were staged, under the same lock.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	for id, record := range uow.stagedOrders {
		uow.store.orders[id] = record
	}
	for _, record := range uow.stagedLogs {
		uow.store.logs[record.orderID] = append(uow.store.logs[record.orderID], record)
	}
	for id, record := range uow.stagedJobs {
		uow.store.jobs[id] = record
	}

	uow.close()
	return nil
}

// Rollback discards the staged writes and releases the lock.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	uow.close()
	return nil
}

func (uow *UnitOfWork) close() {
	uow.active = false
	uow.stagedOrders = nil
	uow.stagedLogs = nil
	uow.stagedJobs = nil
	uow.store.mu.Unlock()
}

// OrderRepository returns an OrderRepository bound to this transaction.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &txOrderRepository{uow: uow}
}

// OrderLogRepository returns an OrderLogRepository bound to this transaction.
func (uow *UnitOfWork) OrderLogRepository() ports.OrderLogRepository {
	return &txOrderLogRepository{uow: uow}
}

// JobRepository returns a JobRepository bound to this transaction.
func (uow *UnitOfWork) JobRepository() ports.JobRepository {
	return &txJobRepository{uow: uow}
}
