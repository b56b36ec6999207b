package order_test

import (
	"testing"
	"time"

	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentalPeriod() (time.Time, time.Time) {
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC)
	return start, end
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with valid parameters", func(t *testing.T) {
		start, end := rentalPeriod()

		o, err := order.NewOrder(10, 20, start, end)

		require.NoError(t, err)
		require.NotNil(t, o)
		assert.NoError(t, o.Validate())
		assert.Equal(t, int64(10), o.UserID())
		assert.Equal(t, int64(20), o.ItemID())
		assert.Equal(t, start, o.StartDate())
		assert.Equal(t, end, o.EndDate())
	})

	t.Run("should start in pending status", func(t *testing.T) {
		start, end := rentalPeriod()

		o, err := order.NewOrder(10, 20, start, end)

		require.NoError(t, err)
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.Pending, o.PreviousStatus())
	})

	t.Run("should apply placeholder amounts", func(t *testing.T) {
		start, end := rentalPeriod()

		o, err := order.NewOrder(10, 20, start, end)

		require.NoError(t, err)
		assert.InDelta(t, 499.99, o.TotalRent(), 0.001)
		assert.InDelta(t, 1000.00, o.Deposit(), 0.001)
	})

	t.Run("should initialize timestamps equal and in UTC", func(t *testing.T) {
		start, end := rentalPeriod()

		o, err := order.NewOrder(10, 20, start, end)

		require.NoError(t, err)
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
		assert.Equal(t, time.UTC, o.CreatedAt().Location())
		assert.WithinDuration(t, time.Now().UTC(), o.CreatedAt(), time.Second)
	})

	t.Run("should leave id unassigned before persistence", func(t *testing.T) {
		start, end := rentalPeriod()

		o, err := order.NewOrder(10, 20, start, end)

		require.NoError(t, err)
		assert.Equal(t, int64(0), o.ID())
	})

	t.Run("should reject non-positive user id", func(t *testing.T) {
		start, end := rentalPeriod()

		for _, userID := range []int64{0, -1} {
			o, err := order.NewOrder(userID, 20, start, end)

			require.Error(t, err)
			assert.Nil(t, o)
			assert.Contains(t, err.Error(), "userId is invalid")
		}
	})

	t.Run("should reject non-positive item id", func(t *testing.T) {
		start, end := rentalPeriod()

		for _, itemID := range []int64{0, -7} {
			o, err := order.NewOrder(10, itemID, start, end)

			require.Error(t, err)
			assert.Nil(t, o)
			assert.Contains(t, err.Error(), "itemId is invalid")
		}
	})

	t.Run("should reject missing rental period bounds", func(t *testing.T) {
		start, end := rentalPeriod()

		_, err := order.NewOrder(10, 20, time.Time{}, end)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "startDate")

		_, err = order.NewOrder(10, 20, start, time.Time{})
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "endDate")
	})

	t.Run("should join multiple validation errors", func(t *testing.T) {
		o, err := order.NewOrder(0, 0, time.Time{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "userId is invalid")
		assert.Contains(t, err.Error(), "itemId is invalid")
		assert.Contains(t, err.Error(), "startDate")
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore all persisted fields", func(t *testing.T) {
		start, end := rentalPeriod()
		createdAt := time.Date(2025, 4, 30, 12, 0, 0, 0, time.UTC)
		updatedAt := time.Date(2025, 5, 2, 9, 30, 0, 0, time.UTC)

		o := order.RestoreOrder(42, 10, 20, start, end, 499.99, 1000.00, order.Active, createdAt, updatedAt)

		require.NotNil(t, o)
		assert.NoError(t, o.Validate())
		assert.Equal(t, int64(42), o.ID())
		assert.Equal(t, int64(10), o.UserID())
		assert.Equal(t, int64(20), o.ItemID())
		assert.Equal(t, start, o.StartDate())
		assert.Equal(t, end, o.EndDate())
		assert.InDelta(t, 499.99, o.TotalRent(), 0.001)
		assert.InDelta(t, 1000.00, o.Deposit(), 0.001)
		assert.Equal(t, order.Active, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("should remember the stored status for conditional updates", func(t *testing.T) {
		start, end := rentalPeriod()

		o := order.RestoreOrder(42, 10, 20, start, end, 499.99, 1000.00, order.Pending, time.Now().UTC(), time.Now().UTC())

		assert.Equal(t, order.Pending, o.PreviousStatus())

		require.NoError(t, o.Activate())

		assert.Equal(t, order.Active, o.Status())
		assert.Equal(t, order.Pending, o.PreviousStatus())
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should accept constructed order", func(t *testing.T) {
		start, end := rentalPeriod()
		o, err := order.NewOrder(10, 20, start, end)

		require.NoError(t, err)
		assert.NoError(t, o.Validate())
	})

	t.Run("should reject zero-value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel pending order", func(t *testing.T) {
		start, end := rentalPeriod()
		o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, order.Pending, time.Now().UTC(), time.Now().UTC())

		err := o.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, order.Pending, o.PreviousStatus())
	})

	t.Run("should bump updatedAt on cancellation", func(t *testing.T) {
		start, end := rentalPeriod()
		loadedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
		o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, order.Pending, loadedAt, loadedAt)

		require.NoError(t, o.Cancel())

		assert.True(t, o.UpdatedAt().After(loadedAt))
		assert.Equal(t, loadedAt, o.CreatedAt())
	})

	t.Run("should reject cancelling non-pending orders", func(t *testing.T) {
		start, end := rentalPeriod()

		for _, status := range []order.Status{order.Active, order.Returned, order.Cancelled} {
			o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, status, time.Now().UTC(), time.Now().UTC())
			before := o.UpdatedAt()

			err := o.Cancel()

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Equal(t, status, o.Status())
			assert.Equal(t, before, o.UpdatedAt())
		}
	})
}

func TestOrder_Activate(t *testing.T) {
	t.Run("should activate pending order", func(t *testing.T) {
		start, end := rentalPeriod()
		o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, order.Pending, time.Now().UTC(), time.Now().UTC())

		err := o.Activate()

		require.NoError(t, err)
		assert.Equal(t, order.Active, o.Status())
		assert.Equal(t, order.Pending, o.PreviousStatus())
	})

	t.Run("should reject activating non-pending orders", func(t *testing.T) {
		start, end := rentalPeriod()

		for _, status := range []order.Status{order.Active, order.Returned, order.Cancelled} {
			o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, status, time.Now().UTC(), time.Now().UTC())

			err := o.Activate()

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Equal(t, status, o.Status())
		}
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should perform administrative transitions", func(t *testing.T) {
		testCases := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Pending, order.Active},
			{order.Pending, order.Returned},
			{order.Pending, order.Cancelled},
			{order.Active, order.Returned},
			{order.Active, order.Cancelled},
			{order.Active, order.Pending},
		}

		start, end := rentalPeriod()
		for _, tc := range testCases {
			o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, tc.from, time.Now().UTC(), time.Now().UTC())

			err := o.ChangeStatus(tc.to)

			require.NoError(t, err)
			assert.Equal(t, tc.to, o.Status())
			assert.Equal(t, tc.from, o.PreviousStatus())
		}
	})

	t.Run("should reject updates on terminal orders", func(t *testing.T) {
		start, end := rentalPeriod()

		for _, status := range []order.Status{order.Returned, order.Cancelled} {
			o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, status, time.Now().UTC(), time.Now().UTC())

			err := o.ChangeStatus(order.Pending)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrInvalidState)
			assert.Equal(t, status, o.Status())
		}
	})

	t.Run("should reject invalid target statuses", func(t *testing.T) {
		start, end := rentalPeriod()
		o := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, order.Pending, time.Now().UTC(), time.Now().UTC())

		err := o.ChangeStatus(order.Unknown)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.Pending, o.Status())
	})
}

func TestOrder_TransitionLog(t *testing.T) {
	t.Run("should build the creation record for a freshly stored order", func(t *testing.T) {
		start, end := rentalPeriod()
		now := time.Now().UTC()
		o := order.RestoreOrder(7, 10, 20, start, end, 499.99, 1000.00, order.Pending, now, now)

		log, err := o.TransitionLog()

		require.NoError(t, err)
		assert.Equal(t, int64(7), log.OrderID())
		assert.Equal(t, order.Pending, log.FromStatus())
		assert.Equal(t, order.Pending, log.ToStatus())
		assert.Equal(t, now, log.Timestamp())
	})

	t.Run("should capture the transition pair after a status change", func(t *testing.T) {
		start, end := rentalPeriod()
		o := order.RestoreOrder(7, 10, 20, start, end, 499.99, 1000.00, order.Pending, time.Now().UTC(), time.Now().UTC())

		require.NoError(t, o.Cancel())

		log, err := o.TransitionLog()

		require.NoError(t, err)
		assert.Equal(t, order.Pending, log.FromStatus())
		assert.Equal(t, order.Cancelled, log.ToStatus())
		assert.Equal(t, o.UpdatedAt(), log.Timestamp())
	})

	t.Run("should fail for orders without a store-assigned id", func(t *testing.T) {
		start, end := rentalPeriod()
		o, err := order.NewOrder(10, 20, start, end)
		require.NoError(t, err)

		_, err = o.TransitionLog()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "orderId is invalid")
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("should compare orders by id", func(t *testing.T) {
		start, end := rentalPeriod()
		a := order.RestoreOrder(1, 10, 20, start, end, 499.99, 1000.00, order.Pending, time.Now().UTC(), time.Now().UTC())
		b := order.RestoreOrder(1, 99, 99, start, end, 499.99, 1000.00, order.Active, time.Now().UTC(), time.Now().UTC())
		c := order.RestoreOrder(2, 10, 20, start, end, 499.99, 1000.00, order.Pending, time.Now().UTC(), time.Now().UTC())

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
		assert.False(t, a.IsEqual(nil))
	})
}
