package order_test

import (
	"errors"
	"testing"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPricingStrategy returns a fixed total or a fixed error.
type stubPricingStrategy struct {
	total kernel.Money
	err   error
}

func (s stubPricingStrategy) Calculate(*order.Order) (kernel.Money, error) {
	if s.err != nil {
		return kernel.Money{}, s.err
	}
	return s.total, nil
}

func testItems(t *testing.T) []order.Item {
	t.Helper()

	price, err := kernel.NewMoneyFromFloat(4.50)
	require.NoError(t, err)
	latte, err := order.NewItem("Latte", 2, price)
	require.NoError(t, err)

	return []order.Item{latte}
}

func testAddress(t *testing.T) *order.Address {
	t.Helper()

	address, err := order.NewAddress("123 Main St", "Springfield", "62704", "USA")
	require.NoError(t, err)
	return &address
}

func newDineInOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(kernel.NewUUID(), "Alice", order.TypeDineIn, testItems(t), nil)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create dine-in order in created status", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		items := testItems(t)

		// When
		o, err := order.NewOrder(id, "Alice", order.TypeDineIn, items, nil)

		// Then
		require.NoError(t, err)
		assert.True(t, id.IsEqual(o.ID()))
		assert.Equal(t, "Alice", o.CustomerName())
		assert.Equal(t, order.TypeDineIn, o.Type())
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.Address())
		assert.Nil(t, o.TotalPrice())
		assert.Len(t, o.Items(), 1)
		assert.False(t, o.CreatedAt().IsZero())
		assert.Equal(t, o.CreatedAt(), o.UpdatedAt())
		assert.NoError(t, o.Validate())
	})

	t.Run("should create delivery order with address", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), "Bob", order.TypeDelivery, testItems(t), testAddress(t))

		require.NoError(t, err)
		assert.Equal(t, order.TypeDelivery, o.Type())
		require.NotNil(t, o.Address())
		assert.Equal(t, "123 Main St, Springfield 62704, USA", o.Address().String())
	})

	t.Run("should reject delivery order without address", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Bob", order.TypeDelivery, testItems(t), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrAddressIsRequired)
	})

	t.Run("should reject dine-in order with address", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Alice", order.TypeDineIn, testItems(t), testAddress(t))

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrAddressIsNotAllowed)
	})

	t.Run("should reject missing customer name", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "", order.TypeDineIn, testItems(t), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrCustomerNameIsRequired)
	})

	t.Run("should reject empty item list", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "Alice", order.TypeDineIn, nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrItemsAreRequired)
	})

	t.Run("should reject invalid id", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "Alice", order.TypeDineIn, testItems(t), nil)

		assert.Error(t, err)
	})

	t.Run("should join multiple violations into one error", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "", order.TypeUnknown, nil, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrCustomerNameIsRequired)
		assert.ErrorIs(t, err, order.ErrItemsAreRequired)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order with status, price, and timestamps", func(t *testing.T) {
		// Given
		id := kernel.NewUUID()
		total, err := kernel.NewMoneyFromFloat(9.00)
		require.NoError(t, err)
		createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
		updatedAt := createdAt.Add(5 * time.Minute)

		// When
		o, err := order.RestoreOrder(id, "Alice", order.TypeDineIn, testItems(t), nil,
			order.Ready, &total, createdAt, updatedAt)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Ready, o.Status())
		require.NotNil(t, o.TotalPrice())
		assert.True(t, o.TotalPrice().IsEqual(total))
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "Alice", order.TypeDineIn, testItems(t), nil,
			order.Unknown, nil, time.Now().UTC(), time.Now().UTC())

		assert.Error(t, err)
	})

	t.Run("should reject unconstructed total price", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), "Alice", order.TypeDineIn, testItems(t), nil,
			order.Settled, &kernel.Money{}, time.Now().UTC(), time.Now().UTC())

		assert.Error(t, err)
	})
}

func TestOrder_ItemsTotal(t *testing.T) {
	t.Run("should sum line totals", func(t *testing.T) {
		// Given
		lattePrice, _ := kernel.NewMoneyFromFloat(4.50)
		muffinPrice, _ := kernel.NewMoneyFromFloat(1.00)
		latte, _ := order.NewItem("Latte", 2, lattePrice)    // 9.00
		muffin, _ := order.NewItem("Muffin", 1, muffinPrice) // 1.00

		o, err := order.NewOrder(kernel.NewUUID(), "Alice", order.TypeDineIn,
			[]order.Item{latte, muffin}, nil)
		require.NoError(t, err)

		// When
		total, err := o.ItemsTotal()

		// Then
		require.NoError(t, err)
		assert.Equal(t, "10.00", total.String())
	})
}

func TestOrder_Settle(t *testing.T) {
	t.Run("should settle created order and lock in the total", func(t *testing.T) {
		// Given
		o := newDineInOrder(t)
		total, _ := kernel.NewMoneyFromFloat(9.00)

		// When
		err := o.Settle(stubPricingStrategy{total: total})

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Settled, o.Status())
		require.NotNil(t, o.TotalPrice())
		assert.True(t, o.TotalPrice().IsEqual(total))
		assert.False(t, o.UpdatedAt().Before(o.CreatedAt()))
	})

	t.Run("should reject nil strategy", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.Settle(nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should leave order untouched when strategy fails", func(t *testing.T) {
		// Given
		o := newDineInOrder(t)
		before := o.UpdatedAt()

		// When
		err := o.Settle(stubPricingStrategy{err: errors.New("pricing unavailable")})

		// Then
		require.Error(t, err)
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.TotalPrice())
		assert.Equal(t, before, o.UpdatedAt())
	})

	t.Run("should reject settlement of a settled order", func(t *testing.T) {
		o := newDineInOrder(t)
		total, _ := kernel.NewMoneyFromFloat(9.00)
		require.NoError(t, o.Settle(stubPricingStrategy{total: total}))

		err := o.Settle(stubPricingStrategy{total: total})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	t.Run("should walk the full happy path", func(t *testing.T) {
		// Given
		o := newDineInOrder(t)
		total, _ := kernel.NewMoneyFromFloat(9.00)

		// When / Then
		require.NoError(t, o.Settle(stubPricingStrategy{total: total}))
		assert.Equal(t, order.Settled, o.Status())

		require.NoError(t, o.StartPreparing())
		assert.Equal(t, order.Preparing, o.Status())

		require.NoError(t, o.MarkAsReady())
		assert.Equal(t, order.Ready, o.Status())

		require.NoError(t, o.Complete())
		assert.Equal(t, order.Completed, o.Status())
		assert.True(t, o.Status().IsTerminal())

		// Total price never changed along the way.
		require.NotNil(t, o.TotalPrice())
		assert.True(t, o.TotalPrice().IsEqual(total))
	})

	t.Run("should reject skipping a stage", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.MarkAsReady()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should leave status untouched on failed transition", func(t *testing.T) {
		o := newDineInOrder(t)
		before := o.UpdatedAt()

		require.Error(t, o.Complete())

		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, before, o.UpdatedAt())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should cancel from every non-completed status", func(t *testing.T) {
		advance := map[string]func(*order.Order){
			"created":   func(*order.Order) {},
			"settled":   func(o *order.Order) { settleForTest(t, o) },
			"preparing": func(o *order.Order) { settleForTest(t, o); _ = o.StartPreparing() },
			"ready": func(o *order.Order) {
				settleForTest(t, o)
				_ = o.StartPreparing()
				_ = o.MarkAsReady()
			},
		}

		for name, prepare := range advance {
			t.Run(name, func(t *testing.T) {
				o := newDineInOrder(t)
				prepare(o)

				require.NoError(t, o.Cancel())
				assert.Equal(t, order.Cancelled, o.Status())
			})
		}
	})

	t.Run("should reject cancelling a completed order", func(t *testing.T) {
		o := newDineInOrder(t)
		settleForTest(t, o)
		require.NoError(t, o.StartPreparing())
		require.NoError(t, o.MarkAsReady())
		require.NoError(t, o.Complete())

		err := o.Cancel()

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should keep the settled total for refunds", func(t *testing.T) {
		o := newDineInOrder(t)
		settleForTest(t, o)

		require.NoError(t, o.Cancel())

		assert.NotNil(t, o.TotalPrice())
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should reject settled as a target", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.TransitionTo(order.Settled)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrSettleRequiresPricing)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should dispatch to the named transitions", func(t *testing.T) {
		o := newDineInOrder(t)
		settleForTest(t, o)

		require.NoError(t, o.TransitionTo(order.Preparing))
		require.NoError(t, o.TransitionTo(order.Ready))
		require.NoError(t, o.TransitionTo(order.Completed))
		assert.Equal(t, order.Completed, o.Status())
	})

	t.Run("should dispatch cancellation", func(t *testing.T) {
		o := newDineInOrder(t)

		require.NoError(t, o.TransitionTo(order.Cancelled))
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should reject created as a target", func(t *testing.T) {
		o := newDineInOrder(t)

		err := o.TransitionTo(order.Created)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject nil and zero-value orders", func(t *testing.T) {
		var nilOrder *order.Order
		assert.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

		zero := &order.Order{}
		assert.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func settleForTest(t *testing.T, o *order.Order) {
	t.Helper()

	total, err := kernel.NewMoneyFromFloat(9.00)
	require.NoError(t, err)
	require.NoError(t, o.Settle(stubPricingStrategy{total: total}))
}
