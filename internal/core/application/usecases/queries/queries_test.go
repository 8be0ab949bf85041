package queries_test

import (
	"testing"

	"coffeeshop/internal/core/application/usecases/queries"
	"coffeeshop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUncompletedOrdersQuery_Validate(t *testing.T) {
	t.Run("should accept a constructed query", func(t *testing.T) {
		query := queries.NewGetUncompletedOrdersQuery()

		assert.NoError(t, query.Validate())
	})

	t.Run("should reject a zero-value query", func(t *testing.T) {
		var query queries.GetUncompletedOrdersQuery

		err := query.Validate()

		require.Error(t, err)
		assert.Equal(t, queries.ErrGetUncompletedOrdersQueryIsNotConstructed, err)
	})
}

func TestGetOrderQuery(t *testing.T) {
	t.Run("should create a query with a valid order id", func(t *testing.T) {
		orderID := kernel.NewUUID()

		query, err := queries.NewGetOrderQuery(orderID)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, orderID.IsEqual(query.OrderID()))
	})

	t.Run("should reject an unconstructed order id", func(t *testing.T) {
		_, err := queries.NewGetOrderQuery(kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("should reject a zero-value query", func(t *testing.T) {
		var query queries.GetOrderQuery

		err := query.Validate()

		require.Error(t, err)
		assert.Equal(t, queries.ErrGetOrderQueryIsNotConstructed, err)
	})
}

func TestGetAllOrdersQuery_Validate(t *testing.T) {
	t.Run("should accept a constructed query", func(t *testing.T) {
		query := queries.NewGetAllOrdersQuery()

		assert.NoError(t, query.Validate())
	})

	t.Run("should reject a zero-value query", func(t *testing.T) {
		var query queries.GetAllOrdersQuery

		err := query.Validate()

		require.Error(t, err)
		assert.Equal(t, queries.ErrGetAllOrdersQueryIsNotConstructed, err)
	})
}

func TestGetDeliveryQuery(t *testing.T) {
	t.Run("should create a query with a valid delivery id", func(t *testing.T) {
		deliveryID := kernel.NewUUID()

		query, err := queries.NewGetDeliveryQuery(deliveryID)

		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.True(t, deliveryID.IsEqual(query.DeliveryID()))
	})

	t.Run("should reject an unconstructed delivery id", func(t *testing.T) {
		_, err := queries.NewGetDeliveryQuery(kernel.UUID{})

		require.Error(t, err)
	})

	t.Run("should reject a zero-value query", func(t *testing.T) {
		var query queries.GetDeliveryQuery

		err := query.Validate()

		require.Error(t, err)
		assert.Equal(t, queries.ErrGetDeliveryQueryIsNotConstructed, err)
	})
}

func TestGetActiveDeliveriesQuery_Validate(t *testing.T) {
	t.Run("should accept a constructed query", func(t *testing.T) {
		query := queries.NewGetActiveDeliveriesQuery()

		assert.NoError(t, query.Validate())
	})

	t.Run("should reject a zero-value query", func(t *testing.T) {
		var query queries.GetActiveDeliveriesQuery

		err := query.Validate()

		require.Error(t, err)
		assert.Equal(t, queries.ErrGetActiveDeliveriesQueryIsNotConstructed, err)
	})
}
