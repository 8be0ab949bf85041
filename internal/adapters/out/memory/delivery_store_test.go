package memory_test

import (
	"testing"
	"time"

	"coffeeshop/internal/adapters/out/memory"
	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyOrder(t *testing.T) *order.Order {
	t.Helper()

	price, err := kernel.NewMoneyFromFloat(4.50)
	require.NoError(t, err)
	item, err := order.NewItem("Latte", 2, price)
	require.NoError(t, err)
	address, err := order.NewAddress("123 Main St", "Springfield", "62704", "USA")
	require.NoError(t, err)
	total, err := kernel.NewMoneyFromFloat(16.00)
	require.NoError(t, err)

	now := time.Now().UTC()
	ord, err := order.RestoreOrder(kernel.NewUUID(), "Alice", order.TypeDelivery,
		[]order.Item{item}, &address, order.Ready, &total, now, now)
	require.NoError(t, err)

	return ord
}

func newDelivery(t *testing.T, orders ...*order.Order) *delivery.Delivery {
	t.Helper()

	d, err := delivery.NewDelivery(kernel.NewUUID(), orders)
	require.NoError(t, err)
	return d
}

func TestDeliveryStore_Save(t *testing.T) {
	t.Run("should store and find a delivery", func(t *testing.T) {
		// Given
		store := memory.NewDeliveryStore()
		d := newDelivery(t, readyOrder(t))

		// When
		err := store.Save(t.Context(), d)

		// Then
		require.NoError(t, err)

		found, err := store.FindByID(t.Context(), d.ID())
		require.NoError(t, err)
		assert.True(t, d.IsEqual(found))
	})

	t.Run("should reject an order already held by another delivery", func(t *testing.T) {
		// Given
		store := memory.NewDeliveryStore()
		shared := readyOrder(t)
		first := newDelivery(t, shared)
		require.NoError(t, store.Save(t.Context(), first))

		second := newDelivery(t, shared)

		// When
		err := store.Save(t.Context(), second)

		// Then
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "already belongs to another delivery")

		// The losing delivery was not stored at all.
		_, err = store.FindByID(t.Context(), second.ID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should allow re-saving the owning delivery", func(t *testing.T) {
		store := memory.NewDeliveryStore()
		d := newDelivery(t, readyOrder(t))
		require.NoError(t, store.Save(t.Context(), d))

		rider, err := delivery.NewRiderInfo("rider-1", "Dana", "555-0100", "")
		require.NoError(t, err)
		require.NoError(t, d.AssignRider(rider))

		assert.NoError(t, store.Save(t.Context(), d))
	})
}

func TestDeliveryStore_FindByOrderID(t *testing.T) {
	t.Run("should find the delivery holding the order", func(t *testing.T) {
		store := memory.NewDeliveryStore()
		ord := readyOrder(t)
		d := newDelivery(t, ord)
		require.NoError(t, store.Save(t.Context(), d))

		found, err := store.FindByOrderID(t.Context(), ord.ID())

		require.NoError(t, err)
		assert.True(t, d.IsEqual(found))
	})

	t.Run("should return not found for an unbatched order", func(t *testing.T) {
		store := memory.NewDeliveryStore()

		_, err := store.FindByOrderID(t.Context(), kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestDeliveryStore_FindActiveDeliveries(t *testing.T) {
	t.Run("should return only active runs", func(t *testing.T) {
		// Given
		store := memory.NewDeliveryStore()

		created := newDelivery(t, readyOrder(t))
		require.NoError(t, store.Save(t.Context(), created))

		assigned := newDelivery(t, readyOrder(t))
		rider, err := delivery.NewRiderInfo("rider-1", "Dana", "555-0100", "")
		require.NoError(t, err)
		require.NoError(t, assigned.AssignRider(rider))
		require.NoError(t, store.Save(t.Context(), assigned))

		// When
		active, err := store.FindActiveDeliveries(t.Context())

		// Then
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.True(t, assigned.IsEqual(active[0]))
	})
}

func TestDeliveryStore_DeleteByID(t *testing.T) {
	t.Run("should free the order index on delete", func(t *testing.T) {
		// Given
		store := memory.NewDeliveryStore()
		ord := readyOrder(t)
		d := newDelivery(t, ord)
		require.NoError(t, store.Save(t.Context(), d))

		// When
		deleted, err := store.DeleteByID(t.Context(), d.ID())

		// Then
		require.NoError(t, err)
		assert.True(t, deleted)

		// The order can join a new delivery again.
		replacement := newDelivery(t, ord)
		assert.NoError(t, store.Save(t.Context(), replacement))
	})

	t.Run("should report a missing delivery", func(t *testing.T) {
		store := memory.NewDeliveryStore()

		deleted, err := store.DeleteByID(t.Context(), kernel.NewUUID())

		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
