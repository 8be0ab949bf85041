package commands

import (
	"errors"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// ItemInput is one requested order line, in raw primitives. Domain
// validation happens when the handler builds the order.Item.
type ItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
}

// AddressInput is a requested delivery destination, in raw primitives.
type AddressInput struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

// PlaceOrderCommand represents a request to place and settle a new order.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), "Alice", order.TypeDineIn,
//	    []ItemInput{{ProductName: "Latte", Quantity: 2, UnitPrice: 4.50}}, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	customerName string
	orderType    order.Type
	items        []ItemInput
	address      *AddressInput

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order. Structural
// validation only; the order's own invariants (item contents, address
// presence per type) are enforced by the domain when the handler runs.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	customerName string,
	orderType order.Type,
	items []ItemInput,
	address *AddressInput,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerName(customerName),
		cmd.setOrderType(orderType),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.address = address
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will be created under.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerName returns the name the order is placed under.
func (c PlaceOrderCommand) CustomerName() string {
	return c.customerName
}

// OrderType returns the requested fulfillment type.
func (c PlaceOrderCommand) OrderType() order.Type {
	return c.orderType
}

// Items returns the requested order lines.
func (c PlaceOrderCommand) Items() []ItemInput {
	out := make([]ItemInput, len(c.items))
	copy(out, c.items)
	return out
}

// Address returns the requested delivery destination, nil for dine-in.
func (c PlaceOrderCommand) Address() *AddressInput {
	return c.address
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customer name")
	}

	c.customerName = customerName
	return nil
}

func (c *PlaceOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *PlaceOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}

	c.items = make([]ItemInput, len(items))
	copy(c.items, items)
	return nil
}
