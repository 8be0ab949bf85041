package queries

import (
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order with its lines by identifier.
type GetOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query to retrieve one order.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to retrieve.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryAddressResponse represents the delivery address of an order
// row. It is absent for dine-in orders.
type GetOrderQueryAddressResponse struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// GetOrderQueryItemResponse represents one order line row.
type GetOrderQueryItemResponse struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// GetOrderQueryResponse represents one order with its lines. TotalPrice is
// nil for orders that have not been settled yet; Address is nil for dine-in
// orders.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	CustomerName string
	OrderType    string
	Status       string
	Address      *GetOrderQueryAddressResponse
	TotalPrice   *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Items        []GetOrderQueryItemResponse
}
