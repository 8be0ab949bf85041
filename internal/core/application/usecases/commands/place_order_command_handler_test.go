package commands_test

import (
	"testing"

	"coffeeshop/internal/adapters/out/memory"
	"coffeeshop/internal/core/application/usecases/commands"
	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func placeOrderFixture(t *testing.T) (
	commands.PlaceOrderCommandHandler, *memory.OrderStore, *MockPaymentGateway, *recordingPublisher,
) {
	t.Helper()

	orders := memory.NewOrderStore()
	payments := new(MockPaymentGateway)
	publisher := &recordingPublisher{}

	handler, err := commands.NewPlaceOrderCommandHandler(
		orders, payments, publisher, services.NewPricingStrategyFactory())
	require.NoError(t, err)

	return handler, orders, payments, publisher
}

func TestNewPlaceOrderCommandHandler(t *testing.T) {
	t.Run("should require every dependency", func(t *testing.T) {
		publisher := &recordingPublisher{}
		payments := new(MockPaymentGateway)
		pricing := services.NewPricingStrategyFactory()

		_, err := commands.NewPlaceOrderCommandHandler(nil, payments, publisher, pricing)
		assert.Error(t, err)

		_, err = commands.NewPlaceOrderCommandHandler(memory.NewOrderStore(), nil, publisher, pricing)
		assert.Error(t, err)

		_, err = commands.NewPlaceOrderCommandHandler(memory.NewOrderStore(), payments, nil, pricing)
		assert.Error(t, err)
	})
}

func TestPlaceOrderCommandHandler_Handle(t *testing.T) {
	items := []commands.ItemInput{{ProductName: "Latte", Quantity: 2, UnitPrice: 4.50}}

	t.Run("should place, settle, charge, and persist a dine-in order", func(t *testing.T) {
		// Given
		handler, orders, payments, publisher := placeOrderFixture(t)
		orderID := kernel.NewUUID()
		cmd, err := commands.NewPlaceOrderCommand(orderID, "Alice", order.TypeDineIn, items, nil)
		require.NoError(t, err)

		payments.On("ProcessPayment", mock.Anything, orderID, mock.Anything).
			Return(true, nil).Once()

		// When
		err = handler.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)

		saved, err := orders.FindByID(t.Context(), orderID)
		require.NoError(t, err)
		assert.Equal(t, order.Preparing, saved.Status())
		require.NotNil(t, saved.TotalPrice())
		assert.Equal(t, "9.00", saved.TotalPrice().String())

		require.Len(t, publisher.Events(), 1)
		created, ok := publisher.Events()[0].(events.OrderCreated)
		require.True(t, ok)
		assert.True(t, orderID.IsEqual(created.OrderID))
		assert.Equal(t, "DINE_IN", created.OrderType)

		payments.AssertExpectations(t)
	})

	t.Run("should apply delivery fees to a delivery order", func(t *testing.T) {
		// Given
		handler, orders, payments, _ := placeOrderFixture(t)
		orderID := kernel.NewUUID()
		address := &commands.AddressInput{
			Street: "123 Main St", City: "Springfield", PostalCode: "62704", Country: "USA",
		}
		cmd, err := commands.NewPlaceOrderCommand(orderID, "Bob", order.TypeDelivery, items, address)
		require.NoError(t, err)

		payments.On("ProcessPayment", mock.Anything, orderID, mock.Anything).
			Return(true, nil).Once()

		// When
		err = handler.Handle(t.Context(), cmd)

		// Then: 9.00 items + 2.00 packaging + 5.00 delivery
		require.NoError(t, err)
		saved, err := orders.FindByID(t.Context(), orderID)
		require.NoError(t, err)
		assert.Equal(t, "16.00", saved.TotalPrice().String())
	})

	t.Run("should persist nothing when the payment is declined", func(t *testing.T) {
		// Given
		handler, orders, payments, publisher := placeOrderFixture(t)
		orderID := kernel.NewUUID()
		cmd, err := commands.NewPlaceOrderCommand(orderID, "Alice", order.TypeDineIn, items, nil)
		require.NoError(t, err)

		payments.On("ProcessPayment", mock.Anything, orderID, mock.Anything).
			Return(false, nil).Once()

		// When
		err = handler.Handle(t.Context(), cmd)

		// Then
		require.Error(t, err)
		assert.ErrorIs(t, err, commands.ErrPaymentDeclined)

		exists, err := orders.ExistsByID(t.Context(), orderID)
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Empty(t, publisher.Events())
	})

	t.Run("should reject a duplicate order id", func(t *testing.T) {
		// Given
		handler, orders, payments, _ := placeOrderFixture(t)
		existing := storeOrder(t, orders, order.TypeDineIn, order.Preparing)
		cmd, err := commands.NewPlaceOrderCommand(existing.ID(), "Alice", order.TypeDineIn, items, nil)
		require.NoError(t, err)

		// When
		err = handler.Handle(t.Context(), cmd)

		// Then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
		payments.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject a delivery order without address", func(t *testing.T) {
		handler, _, _, _ := placeOrderFixture(t)
		cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), "Bob", order.TypeDelivery, items, nil)
		require.NoError(t, err)

		err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrAddressIsRequired)
	})

	t.Run("should reject a zero-value command", func(t *testing.T) {
		handler, _, _, _ := placeOrderFixture(t)

		err := handler.Handle(t.Context(), commands.PlaceOrderCommand{})

		require.Error(t, err)
		assert.Equal(t, commands.ErrPlaceOrderCommandIsNotConstructed, err)
	})
}

func TestNewPlaceOrderCommand(t *testing.T) {
	t.Run("should reject structural violations", func(t *testing.T) {
		items := []commands.ItemInput{{ProductName: "Latte", Quantity: 1, UnitPrice: 4.50}}

		_, err := commands.NewPlaceOrderCommand(kernel.UUID{}, "Alice", order.TypeDineIn, items, nil)
		assert.Error(t, err)

		_, err = commands.NewPlaceOrderCommand(kernel.NewUUID(), "", order.TypeDineIn, items, nil)
		assert.Error(t, err)

		_, err = commands.NewPlaceOrderCommand(kernel.NewUUID(), "Alice", order.TypeUnknown, items, nil)
		assert.Error(t, err)

		_, err = commands.NewPlaceOrderCommand(kernel.NewUUID(), "Alice", order.TypeDineIn, nil, nil)
		assert.Error(t, err)
	})
}
