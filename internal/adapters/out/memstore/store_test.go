package memstore_test

import (
	"testing"
	"time"

	"rentalorders/internal/adapters/out/memstore"
	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"
	"rentalorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderAggregate(t *testing.T) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(7, 42,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return aggregate
}

func addOrder(t *testing.T, store *memstore.Store) *order.Order {
	t.Helper()
	aggregate := newOrderAggregate(t)
	require.NoError(t, store.OrderRepository().Add(t.Context(), aggregate))
	return aggregate
}

func addJob(t *testing.T, store *memstore.Store, orderID int64) *job.Job {
	t.Helper()
	aggregate, err := job.NewJob(kernel.NewUUID(), orderID)
	require.NoError(t, err)
	require.NoError(t, store.JobRepository().Add(t.Context(), aggregate))
	return aggregate
}

func TestStore_AddAssignsSequentialIDs(t *testing.T) {
	store := memstore.NewStore()

	first := addOrder(t, store)
	second := addOrder(t, store)

	assert.Equal(t, int64(1), first.ID())
	assert.Equal(t, int64(2), second.ID())
}

func TestStore_GetUnknownOrder(t *testing.T) {
	store := memstore.NewStore()

	_, err := store.OrderRepository().Get(t.Context(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestStore_ConditionalOrderUpdate(t *testing.T) {
	ctx := t.Context()
	store := memstore.NewStore()
	seeded := addOrder(t, store)

	// Two writers load the same committed state.
	first, err := store.OrderRepository().Get(ctx, seeded.ID())
	require.NoError(t, err)
	second, err := store.OrderRepository().Get(ctx, seeded.ID())
	require.NoError(t, err)

	require.NoError(t, first.Cancel())
	require.NoError(t, store.OrderRepository().Update(ctx, first))

	// The second writer still guards on pending and must lose.
	require.NoError(t, second.Activate())
	err = store.OrderRepository().Update(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)

	committed, err := store.OrderRepository().Get(ctx, seeded.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, committed.Status())
}

func TestStore_ConditionalJobUpdate(t *testing.T) {
	ctx := t.Context()
	store := memstore.NewStore()
	seeded := addJob(t, store, 1)

	first, err := store.JobRepository().Get(ctx, seeded.ID())
	require.NoError(t, err)
	second, err := store.JobRepository().Get(ctx, seeded.ID())
	require.NoError(t, err)

	require.NoError(t, first.Run())
	require.NoError(t, store.JobRepository().Update(ctx, first))

	require.NoError(t, second.Run())
	err = store.JobRepository().Update(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
}

func TestStore_FindOrdersFilters(t *testing.T) {
	ctx := t.Context()
	store := memstore.NewStore()

	first := addOrder(t, store)
	second := addOrder(t, store)
	third := addOrder(t, store)

	require.NoError(t, second.Cancel())
	require.NoError(t, store.OrderRepository().Update(ctx, second))

	pending := order.Pending
	results, err := store.OrderRepository().Find(ctx, ports.OrderFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, first.ID(), results[0].ID())
	assert.Equal(t, third.ID(), results[1].ID())

	cancelled := order.Cancelled
	results, err = store.OrderRepository().Find(ctx, ports.OrderFilter{Status: &cancelled})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, second.ID(), results[0].ID())

	nobody := int64(999)
	results, err = store.OrderRepository().Find(ctx, ports.OrderFilter{UserID: &nobody})
	require.NoError(t, err)
	assert.Empty(t, results)

	future := time.Now().UTC().Add(time.Hour)
	results, err = store.OrderRepository().Find(ctx, ports.OrderFilter{CreatedFrom: &future})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = store.OrderRepository().Find(ctx, ports.OrderFilter{CreatedTo: &future})
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestStore_LogsComeBackInOrder(t *testing.T) {
	ctx := t.Context()
	store := memstore.NewStore()
	seeded := addOrder(t, store)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, transition := range []order.Status{order.Pending, order.Active} {
		record, err := order.NewOrderLog(seeded.ID(), order.Pending, transition, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		require.NoError(t, store.OrderLogRepository().Add(ctx, record))
	}

	records, err := store.OrderLogRepository().GetAllForOrder(ctx, seeded.ID())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, order.Pending, records[0].ToStatus())
	assert.Equal(t, order.Active, records[1].ToStatus())
	assert.Less(t, records[0].ID(), records[1].ID())
}

func TestStore_PendingJobsBeforeCutoff(t *testing.T) {
	ctx := t.Context()
	store := memstore.NewStore()

	fresh := addJob(t, store, 1)
	claimed := addJob(t, store, 2)

	require.NoError(t, claimed.Run())
	require.NoError(t, store.JobRepository().Update(ctx, claimed))

	// Everything committed so far is older than a future cutoff; only the
	// still-pending job comes back.
	cutoff := time.Now().UTC().Add(time.Minute)
	orphans, err := store.JobRepository().GetAllPendingBefore(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, fresh.ID(), orphans[0].ID())

	// A cutoff in the past matches nothing.
	orphans, err = store.JobRepository().GetAllPendingBefore(ctx, time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)
	assert.Empty(t, orphans)
}
