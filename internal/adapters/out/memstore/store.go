// Package memstore provides an in-process storage adapter behind the same
// ports as the postgres adapter. It backs the service when no database is
// configured and the handler tests, which exercise real command and query
// handlers against it.
//
// Committed state lives in maps guarded by one RWMutex. A unit of work
// holds the write lock from Begin until Commit or Rollback and stages its
// writes in an overlay, so a transaction is all-or-nothing and never
// observable half-applied: a reader can never see an order's new status
// without the matching audit record.
package memstore

import (
	"sort"
	"sync"
	"time"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
)

// Store holds the committed state of all aggregates.
type Store struct {
	mu sync.RWMutex

	orders map[int64]orderRecord
	logs   map[int64][]logRecord
	jobs   map[kernel.UUID]jobRecord

	nextOrderID int64
	nextLogID   int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders: make(map[int64]orderRecord),
		logs:   make(map[int64][]logRecord),
		jobs:   make(map[kernel.UUID]jobRecord),
	}
}

// orderRecord is the stored form of an order aggregate. Records are plain
// values, so committed state never aliases a live aggregate.
type orderRecord struct {
	id        int64
	userID    int64
	itemID    int64
	startDate time.Time
	endDate   time.Time
	totalRent float64
	deposit   float64
	status    order.Status
	createdAt time.Time
	updatedAt time.Time
}

func orderRecordFromAggregate(aggregate *order.Order) orderRecord {
	return orderRecord{
		id:        aggregate.ID(),
		userID:    aggregate.UserID(),
		itemID:    aggregate.ItemID(),
		startDate: aggregate.StartDate(),
		endDate:   aggregate.EndDate(),
		totalRent: aggregate.TotalRent(),
		deposit:   aggregate.Deposit(),
		status:    aggregate.Status(),
		createdAt: aggregate.CreatedAt(),
		updatedAt: aggregate.UpdatedAt(),
	}
}

func (r orderRecord) toAggregate() *order.Order {
	return order.RestoreOrder(
		r.id, r.userID, r.itemID,
		r.startDate, r.endDate,
		r.totalRent, r.deposit,
		r.status, r.createdAt, r.updatedAt,
	)
}

func (r orderRecord) matches(filter ports.OrderFilter) bool {
	if filter.Status != nil && r.status != *filter.Status {
		return false
	}
	if filter.UserID != nil && r.userID != *filter.UserID {
		return false
	}
	if filter.ItemID != nil && r.itemID != *filter.ItemID {
		return false
	}
	if filter.CreatedFrom != nil && r.createdAt.Before(*filter.CreatedFrom) {
		return false
	}
	if filter.CreatedTo != nil && r.createdAt.After(*filter.CreatedTo) {
		return false
	}
	return true
}

// logRecord is the stored form of an audit record.
type logRecord struct {
	id         int64
	orderID    int64
	fromStatus order.Status
	toStatus   order.Status
	timestamp  time.Time
}

func (r logRecord) toRecord() *order.OrderLog {
	return order.RestoreOrderLog(r.id, r.orderID, r.fromStatus, r.toStatus, r.timestamp)
}

// jobRecord is the stored form of a confirmation job.
type jobRecord struct {
	id        kernel.UUID
	orderID   int64
	status    job.Status
	result    *string
	createdAt time.Time
}

func jobRecordFromAggregate(aggregate *job.Job) jobRecord {
	var result *string
	if r := aggregate.Result(); r != nil {
		value := *r
		result = &value
	}

	return jobRecord{
		id:        aggregate.ID(),
		orderID:   aggregate.OrderID(),
		status:    aggregate.Status(),
		result:    result,
		createdAt: aggregate.CreatedAt(),
	}
}

func (r jobRecord) toAggregate() *job.Job {
	var result *string
	if r.result != nil {
		value := *r.result
		result = &value
	}

	return job.RestoreJob(r.id, r.orderID, r.status, result, r.createdAt)
}

// Committed-state readers. They take the read lock, so they block only
// while a unit of work is between Begin and Commit/Rollback.

func (s *Store) getOrder(id int64) (orderRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.orders[id]
	return record, ok
}

func (s *Store) findOrders(filter ports.OrderFilter) []orderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]orderRecord, 0)
	for _, record := range s.orders {
		if record.matches(filter) {
			records = append(records, record)
		}
	}

	sortOrderRecords(records)
	return records
}

func (s *Store) logsForOrder(orderID int64) []logRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]logRecord, len(s.logs[orderID]))
	copy(records, s.logs[orderID])

	sortLogRecords(records)
	return records
}

func (s *Store) getJob(id kernel.UUID) (jobRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.jobs[id]
	return record, ok
}

func (s *Store) pendingJobsBefore(cutoff time.Time) []jobRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]jobRecord, 0)
	for _, record := range s.jobs {
		if record.status == job.Pending && record.createdAt.Before(cutoff) {
			records = append(records, record)
		}
	}

	sort.Slice(records, func(i, j int) bool { return records[i].createdAt.Before(records[j].createdAt) })
	return records
}

// sortOrderRecords orders records by ascending id so listings are stable.
func sortOrderRecords(records []orderRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].id < records[j].id })
}

// sortLogRecords orders audit records by (timestamp, logId).
func sortLogRecords(records []logRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].timestamp.Equal(records[j].timestamp) {
			return records[i].id < records[j].id
		}
		return records[i].timestamp.Before(records[j].timestamp)
	})
}
