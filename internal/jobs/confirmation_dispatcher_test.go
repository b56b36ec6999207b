package jobs_test

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"rentalorders/internal/adapters/out/memstore"
	"rentalorders/internal/core/application/usecases/commands"
	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The dispatcher is exercised end to end: a real workflow handler over the
// in-memory store, so a dispatched job observably confirms its order.

type funcUoWFactory func() commands.UoW

func (f funcUoWFactory) Create() commands.UoW { return f() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDispatcher(t *testing.T, store *memstore.Store, workers int) *jobs.ConfirmationDispatcher {
	t.Helper()
	factory := memstore.NewUnitOfWorkFactory(store)
	handler := commands.NewProcessConfirmationCommandHandler(
		funcUoWFactory(func() commands.UoW { return factory.Create() }),
		nil,
		discardLogger(),
	)
	return jobs.NewConfirmationDispatcher(handler, workers, discardLogger())
}

func seedPendingOrder(t *testing.T, store *memstore.Store) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(7, 42,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, store.OrderRepository().Add(t.Context(), aggregate))
	return aggregate
}

func seedPendingJob(t *testing.T, store *memstore.Store, orderID int64) *job.Job {
	t.Helper()
	aggregate, err := job.NewJob(kernel.NewUUID(), orderID)
	require.NoError(t, err)
	require.NoError(t, store.JobRepository().Add(t.Context(), aggregate))
	return aggregate
}

func jobStatus(t *testing.T, store *memstore.Store, id kernel.UUID) job.Status {
	t.Helper()
	aggregate, err := store.JobRepository().Get(t.Context(), id)
	require.NoError(t, err)
	return aggregate.Status()
}

func TestConfirmationDispatcher_ExecutesDispatchedJob(t *testing.T) {
	store := memstore.NewStore()
	seeded := seedPendingOrder(t, store)
	pending := seedPendingJob(t, store, seeded.ID())

	dispatcher := newDispatcher(t, store, 2)
	dispatcher.Start()
	defer dispatcher.Stop()

	dispatcher.Dispatch(pending)

	require.Eventually(t, func() bool {
		return jobStatus(t, store, pending.ID()) == job.Succeeded
	}, 5*time.Second, 10*time.Millisecond)

	confirmed, err := store.OrderRepository().Get(t.Context(), seeded.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Active, confirmed.Status())
}

func TestConfirmationDispatcher_OverflowFallsBackToGoroutine(t *testing.T) {
	store := memstore.NewStore()

	// One worker, queue capacity four: dispatching twenty jobs forces the
	// overflow path. Stop drains everything, so all jobs must be done after.
	dispatcher := newDispatcher(t, store, 1)
	dispatcher.Start()

	pending := make([]*job.Job, 0, 20)
	for range 20 {
		seeded := seedPendingOrder(t, store)
		pending = append(pending, seedPendingJob(t, store, seeded.ID()))
	}
	for _, aggregate := range pending {
		dispatcher.Dispatch(aggregate)
	}
	dispatcher.Stop()

	for i, aggregate := range pending {
		assert.Equal(t, job.Succeeded, jobStatus(t, store, aggregate.ID()), fmt.Sprintf("job %d", i))
	}
}

func TestConfirmationDispatcher_DispatchAfterStopLeavesJobPending(t *testing.T) {
	store := memstore.NewStore()
	seeded := seedPendingOrder(t, store)
	pending := seedPendingJob(t, store, seeded.ID())

	dispatcher := newDispatcher(t, store, 1)
	dispatcher.Start()
	dispatcher.Stop()

	dispatcher.Dispatch(pending)

	assert.Equal(t, job.Pending, jobStatus(t, store, pending.ID()))
	untouched, err := store.OrderRepository().Get(t.Context(), seeded.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Pending, untouched.Status())
}

func TestConfirmationDispatcher_StopIsIdempotent(t *testing.T) {
	store := memstore.NewStore()
	dispatcher := newDispatcher(t, store, 1)
	dispatcher.Start()

	dispatcher.Stop()
	dispatcher.Stop()
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	store := memstore.NewStore()
	dispatcher := newDispatcher(t, store, 1)
	sweep := jobs.NewPendingJobsSweepJob(store.JobRepository(), dispatcher, time.Minute, discardLogger())

	manager := jobs.NewJobManager(dispatcher, sweep)
	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
