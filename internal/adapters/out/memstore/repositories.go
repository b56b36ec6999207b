package memstore

import (
	"context"
	"time"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
	"rentalorders/internal/pkg/errs"
)

// Transaction-bound repositories. The owning unit of work holds the store's
// write lock, so reads see committed state plus this transaction's overlay
// and conditional checks stay valid until Commit.

type txOrderRepository struct {
	uow *UnitOfWork
}

func (r *txOrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// Ids come from a sequence: one consumed on rollback stays consumed,
	// matching the behavior of the postgres adapter.
	r.uow.store.nextOrderID++
	if err := aggregate.AssignID(r.uow.store.nextOrderID); err != nil {
		return err
	}

	r.uow.stagedOrders[aggregate.ID()] = orderRecordFromAggregate(aggregate)
	return nil
}

func (r *txOrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	current, ok := r.currentRecord(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}
	if current.status != aggregate.PreviousStatus() {
		return errs.NewConcurrencyConflictError("order", aggregate.ID())
	}

	r.uow.stagedOrders[aggregate.ID()] = orderRecordFromAggregate(aggregate)
	return nil
}

func (r *txOrderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	record, ok := r.currentRecord(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	return record.toAggregate(), nil
}

func (r *txOrderRepository) Find(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	merged := make(map[int64]orderRecord, len(r.uow.store.orders))
	for id, record := range r.uow.store.orders {
		merged[id] = record
	}
	for id, record := range r.uow.stagedOrders {
		merged[id] = record
	}

	records := make([]orderRecord, 0)
	for _, record := range merged {
		if record.matches(filter) {
			records = append(records, record)
		}
	}

	return sortedOrderAggregates(records), nil
}

func (r *txOrderRepository) currentRecord(id int64) (orderRecord, bool) {
	if record, ok := r.uow.stagedOrders[id]; ok {
		return record, true
	}
	record, ok := r.uow.store.orders[id]
	return record, ok
}

type txOrderLogRepository struct {
	uow *UnitOfWork
}

func (r *txOrderLogRepository) Add(_ context.Context, record *order.OrderLog) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := record.Validate(); err != nil {
		return err
	}

	r.uow.store.nextLogID++
	r.uow.stagedLogs = append(r.uow.stagedLogs, logRecord{
		id:         r.uow.store.nextLogID,
		orderID:    record.OrderID(),
		fromStatus: record.FromStatus(),
		toStatus:   record.ToStatus(),
		timestamp:  record.Timestamp(),
	})
	return nil
}

func (r *txOrderLogRepository) GetAllForOrder(_ context.Context, orderID int64) ([]*order.OrderLog, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	records := make([]logRecord, len(r.uow.store.logs[orderID]))
	copy(records, r.uow.store.logs[orderID])
	for _, record := range r.uow.stagedLogs {
		if record.orderID == orderID {
			records = append(records, record)
		}
	}

	sortLogRecords(records)
	return toLogAggregates(records), nil
}

type txJobRepository struct {
	uow *UnitOfWork
}

func (r *txJobRepository) Add(_ context.Context, aggregate *job.Job) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.uow.stagedJobs[aggregate.ID()] = jobRecordFromAggregate(aggregate)
	return nil
}

func (r *txJobRepository) Update(_ context.Context, aggregate *job.Job) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	current, ok := r.currentRecord(aggregate.ID())
	if !ok {
		return errs.NewObjectNotFoundError("job", aggregate.ID().String())
	}
	if current.status != aggregate.PreviousStatus() {
		return errs.NewConcurrencyConflictError("job", aggregate.ID().String())
	}

	r.uow.stagedJobs[aggregate.ID()] = jobRecordFromAggregate(aggregate)
	return nil
}

func (r *txJobRepository) Get(_ context.Context, id kernel.UUID) (*job.Job, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	record, ok := r.currentRecord(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("job", id.String())
	}

	return record.toAggregate(), nil
}

func (r *txJobRepository) GetAllPendingBefore(_ context.Context, cutoff time.Time) ([]*job.Job, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	merged := make(map[kernel.UUID]jobRecord, len(r.uow.store.jobs))
	for id, record := range r.uow.store.jobs {
		merged[id] = record
	}
	for id, record := range r.uow.stagedJobs {
		merged[id] = record
	}

	aggregates := make([]*job.Job, 0)
	for _, record := range merged {
		if record.status == job.Pending && record.createdAt.Before(cutoff) {
			aggregates = append(aggregates, record.toAggregate())
		}
	}

	return aggregates, nil
}

func (r *txJobRepository) currentRecord(id kernel.UUID) (jobRecord, bool) {
	if record, ok := r.uow.stagedJobs[id]; ok {
		return record, true
	}
	record, ok := r.uow.store.jobs[id]
	return record, ok
}

// Standalone repositories serve callers outside any transaction: query
// handlers and the reconciliation sweep. Reads take the store's read lock
// per call; writes run through a one-shot unit of work.

// OrderRepository returns a repository over committed state.
func (s *Store) OrderRepository() ports.OrderRepository {
	return &storeOrderRepository{store: s}
}

// OrderLogRepository returns a repository over committed state.
func (s *Store) OrderLogRepository() ports.OrderLogRepository {
	return &storeOrderLogRepository{store: s}
}

// JobRepository returns a repository over committed state.
func (s *Store) JobRepository() ports.JobRepository {
	return &storeJobRepository{store: s}
}

type storeOrderRepository struct {
	store *Store
}

func (r *storeOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	return r.store.withOneShot(ctx, func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, aggregate)
	})
}

func (r *storeOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	return r.store.withOneShot(ctx, func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Update(ctx, aggregate)
	})
}

func (r *storeOrderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	record, ok := r.store.getOrder(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return record.toAggregate(), nil
}

func (r *storeOrderRepository) Find(_ context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	return sortedOrderAggregates(r.store.findOrders(filter)), nil
}

type storeOrderLogRepository struct {
	store *Store
}

func (r *storeOrderLogRepository) Add(ctx context.Context, record *order.OrderLog) error {
	return r.store.withOneShot(ctx, func(uow ports.UnitOfWork) error {
		return uow.OrderLogRepository().Add(ctx, record)
	})
}

func (r *storeOrderLogRepository) GetAllForOrder(_ context.Context, orderID int64) ([]*order.OrderLog, error) {
	return toLogAggregates(r.store.logsForOrder(orderID)), nil
}

type storeJobRepository struct {
	store *Store
}

func (r *storeJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	return r.store.withOneShot(ctx, func(uow ports.UnitOfWork) error {
		return uow.JobRepository().Add(ctx, aggregate)
	})
}

func (r *storeJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	return r.store.withOneShot(ctx, func(uow ports.UnitOfWork) error {
		return uow.JobRepository().Update(ctx, aggregate)
	})
}

func (r *storeJobRepository) Get(_ context.Context, id kernel.UUID) (*job.Job, error) {
	record, ok := r.store.getJob(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("job", id.String())
	}
	return record.toAggregate(), nil
}

func (r *storeJobRepository) GetAllPendingBefore(_ context.Context, cutoff time.Time) ([]*job.Job, error) {
	records := r.store.pendingJobsBefore(cutoff)
	aggregates := make([]*job.Job, 0, len(records))
	for _, record := range records {
		aggregates = append(aggregates, record.toAggregate())
	}
	return aggregates, nil
}

// withOneShot runs a single write in its own transaction.
func (s *Store) withOneShot(ctx context.Context, fn func(uow ports.UnitOfWork) error) error {
	uow := &UnitOfWork{store: s}
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func sortedOrderAggregates(records []orderRecord) []*order.Order {
	sorted := make([]orderRecord, len(records))
	copy(sorted, records)
	sortOrderRecords(sorted)

	aggregates := make([]*order.Order, 0, len(sorted))
	for _, record := range sorted {
		aggregates = append(aggregates, record.toAggregate())
	}
	return aggregates
}

func toLogAggregates(records []logRecord) []*order.OrderLog {
	aggregates := make([]*order.OrderLog, 0, len(records))
	for _, record := range records {
		aggregates = append(aggregates, record.toRecord())
	}
	return aggregates
}
