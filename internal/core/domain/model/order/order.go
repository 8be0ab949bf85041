package order

import (
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrCustomerNameIsRequired is returned when attempting to create an order without a customer name.
	ErrCustomerNameIsRequired = errs.NewValueIsRequiredError("customer name")
	// ErrItemsAreRequired is returned when attempting to create an order with no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("order items")
	// ErrAddressIsRequired is returned when a delivery order is created without an address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("delivery orders require an address")
	// ErrAddressIsNotAllowed is returned when a dine-in order is created with an address.
	ErrAddressIsNotAllowed = errs.NewValueIsInvalidError("dine-in orders must not have an address")
	// ErrSettleRequiresPricing is returned when a settlement is attempted through
	// TransitionTo instead of Settle, which needs a pricing strategy.
	ErrSettleRequiresPricing = errs.NewValueIsInvalidError(
		"settlement requires a pricing strategy; use Settle instead of TransitionTo")
)

// PricingStrategy computes the total price of an order at settlement time.
// Implementations are selected by order type; see the services package.
type PricingStrategy interface {
	Calculate(o *Order) (kernel.Money, error)
}

// Order is the aggregate root for a single coffee shop order. It owns the
// order lines, the optional delivery address, and the lifecycle status, and
// enforces every transition rule of the order state machine.
//
// Key invariants:
//   - At least one item; items are immutable after construction
//   - Delivery orders carry an address, dine-in orders never do
//   - The total price exists exactly from Settled onward and never changes
//   - Failed transitions leave the aggregate untouched
//
// The struct uses private fields; create instances through NewOrder or,
// when loading from persistence, RestoreOrder.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID
	// customerName is the name the order was placed under
	customerName string
	// orderType selects pricing and batching behavior
	orderType Type
	// items are the order lines (at least one)
	items []Item
	// address is the delivery destination (nil for dine-in orders)
	address *Address
	// status is the current lifecycle state
	status Status
	// totalPrice is computed at settlement (nil before Settled)
	totalPrice *kernel.Money
	// createdAt is when the order was placed
	createdAt time.Time
	// updatedAt is bumped on every successful mutation
	updatedAt time.Time
	// guard ensures the order was properly constructed
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Created status with no total price.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - customerName: Name the order is placed under (trimmed, non-empty)
//   - orderType: TypeDineIn or TypeDelivery
//   - items: Order lines (at least one, all valid)
//   - address: Required for delivery orders, forbidden for dine-in
//
// Returns the created order, or a joined validation error listing every
// violated rule.
//
// Example:
//
//	item, _ := order.NewItem("Latte", 2, price)
//	o, err := order.NewOrder(kernel.NewUUID(), "Alice", order.TypeDineIn, []order.Item{item}, nil)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	customerName string,
	orderType Type,
	items []Item,
	address *Address,
) (*Order, error) {
	now := time.Now().UTC()

	o := &Order{
		status:    Created,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setOrderType(orderType),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	if err := o.setAddress(address); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including its
// status, total price, and timestamps. The same construction invariants
// apply; the restored order behaves identically to one built through domain
// operations.
func RestoreOrder(
	id kernel.UUID,
	customerName string,
	orderType Type,
	items []Item,
	address *Address,
	status Status,
	totalPrice *kernel.Money,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt: createdAt,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerName(customerName),
		o.setOrderType(orderType),
		o.setItems(items),
		o.setStatus(status),
		o.setTotalPrice(totalPrice),
	); err != nil {
		return nil, err
	}

	if err := o.setAddress(address); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerName returns the name the order was placed under.
func (o *Order) CustomerName() string {
	return o.customerName
}

// Type returns the order's fulfillment type.
func (o *Order) Type() Type {
	return o.orderType
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Address returns the delivery destination, or nil for dine-in orders.
func (o *Order) Address() *Address {
	return o.address
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// TotalPrice returns the settled total, or nil before settlement.
func (o *Order) TotalPrice() *kernel.Money {
	return o.totalPrice
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns when the order was last mutated.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ItemsTotal sums the line totals of all items. It is the base amount
// pricing strategies start from.
func (o *Order) ItemsTotal() (kernel.Money, error) {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		var err error
		total, err = total.Add(item.TotalPrice())
		if err != nil {
			return kernel.Money{}, err
		}
	}
	return total, nil
}

// Settle transitions the order from Created to Settled, computing and
// locking in the total price via the given pricing strategy.
//
// The price is calculated before any state changes: if the strategy fails,
// the order remains Created with no total price.
//
// Parameters:
//   - strategy: The pricing strategy matching the order type
//
// Returns an error if the strategy is nil, the price calculation fails, or
// the order is not in Created status.
func (o *Order) Settle(strategy PricingStrategy) error {
	if strategy == nil {
		return errs.NewValueIsRequiredError("pricing strategy")
	}

	newStatus, err := o.status.Settle()
	if err != nil {
		return err
	}

	total, err := strategy.Calculate(o)
	if err != nil {
		return err
	}
	if err := total.Validate(); err != nil {
		return err
	}

	o.status = newStatus
	o.totalPrice = &total
	o.touch()
	return nil
}

// StartPreparing transitions the order from Settled to Preparing.
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// MarkAsReady transitions the order from Preparing to Ready. Ready delivery
// orders become eligible for batching.
func (o *Order) MarkAsReady() error {
	newStatus, err := o.status.MarkAsReady()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Complete transitions the order from Ready to Completed.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// Cancel transitions the order to Cancelled from any status except
// Completed. The total price, if already settled, is kept for refunds.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// TransitionTo moves the order to the named target status, dispatching to
// the corresponding transition method. Settled is rejected because
// settlement needs a pricing strategy and must go through Settle.
func (o *Order) TransitionTo(target Status) error {
	switch target {
	case Settled:
		return ErrSettleRequiresPricing
	case Preparing:
		return o.StartPreparing()
	case Ready:
		return o.MarkAsReady()
	case Completed:
		return o.Complete()
	case Cancelled:
		return o.Cancel()
	case Unknown, Created:
		fallthrough
	default:
		return errs.NewInvalidStateTransitionError(o.status.String(), target.String())
	}
}

// touch bumps the updatedAt timestamp after a successful mutation.
func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerName validates and sets the customer name.
func (o *Order) setCustomerName(customerName string) error {
	if customerName == "" {
		return ErrCustomerNameIsRequired
	}
	o.customerName = customerName
	return nil
}

// setOrderType validates and sets the fulfillment type.
func (o *Order) setOrderType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

// setItems validates and copies the order lines.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// setAddress enforces the type/address invariant: delivery orders require
// an address, dine-in orders must not have one. Called after setOrderType.
func (o *Order) setAddress(address *Address) error {
	switch o.orderType {
	case TypeDelivery:
		if address == nil {
			return ErrAddressIsRequired
		}
		if err := address.Validate(); err != nil {
			return err
		}
	case TypeDineIn:
		if address != nil {
			return ErrAddressIsNotAllowed
		}
	case TypeUnknown:
	}

	o.address = address
	return nil
}

// setStatus validates and sets the lifecycle status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setTotalPrice validates and sets the settled total during restoration.
func (o *Order) setTotalPrice(totalPrice *kernel.Money) error {
	if totalPrice != nil {
		if err := totalPrice.Validate(); err != nil {
			return err
		}
	}
	o.totalPrice = totalPrice
	return nil
}
