package delivery

import (
	"errors"
	"fmt"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"
)

// ItemStatus is the per-order sub-state inside a delivery run. It is
// strictly linear (Ready -> PickedUp -> Delivered) and only the parent
// Delivery's bulk transitions mutate it, which keeps every item in lockstep
// with the run's lifecycle stage.
type ItemStatus int

const (
	// ItemStatusUnknown is the invalid zero value.
	ItemStatusUnknown ItemStatus = iota

	// ItemReady means the order is waiting at the shop.
	ItemReady

	// ItemPickedUp means the rider has the order.
	ItemPickedUp

	// ItemDelivered is the terminal sub-state.
	ItemDelivered
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemReady:     "READY",
		ItemPickedUp:  "PICKED_UP",
		ItemDelivered: "DELIVERED",
	}
}

// Validate checks that the ItemStatus is one of the declared values.
func (s ItemStatus) Validate() error {
	if _, ok := getItemStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery item status",
			fmt.Errorf("%d is not a valid delivery item status", s))
	}
	return nil
}

// String returns the wire name of the sub-state, "UNKNOWN" for invalid values.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ItemStatusFromString parses a wire name back into an ItemStatus.
func ItemStatusFromString(str string) (ItemStatus, error) {
	for s, name := range getItemStatusStrings() {
		if name == str {
			return s, nil
		}
	}
	return ItemStatusUnknown, errs.NewValueIsInvalidErrorWithCause("delivery item status",
		fmt.Errorf("%q is not a valid delivery item status", str))
}

// ErrItemIsNotConstructed is returned when using an improperly initialized Item.
var ErrItemIsNotConstructed = errors.New(
	"delivery Item must be created via newItem or RestoreItem constructor")

// Item tracks one order within a delivery run. It holds a read-only
// back-reference to the wrapped order; the only mutable field is the
// sub-state, driven by the parent Delivery.
type Item struct {
	// orderID is the wrapped order's identifier
	orderID kernel.UUID
	// ord is the read-only back-reference to the wrapped order
	ord *order.Order
	// status is the pickup/delivery sub-state
	status ItemStatus
	// guard ensures the item was properly constructed
	guard guard.ConstructorGuard
}

// newItem wraps a ready order into a fresh delivery item. Only the parent
// Delivery's constructor calls this.
func newItem(ord *order.Order) (*Item, error) {
	if err := ord.Validate(); err != nil {
		return nil, err
	}

	return &Item{
		orderID: ord.ID(),
		ord:     ord,
		status:  ItemReady,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreItem reconstructs a delivery item from persistent storage with its
// persisted sub-state.
func RestoreItem(ord *order.Order, status ItemStatus) (*Item, error) {
	if err := errors.Join(ord.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Item{
		orderID: ord.ID(),
		ord:     ord,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Item was created through a constructor.
func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// OrderID returns the wrapped order's identifier.
func (i *Item) OrderID() kernel.UUID {
	return i.orderID
}

// Order returns the read-only back-reference to the wrapped order.
func (i *Item) Order() *order.Order {
	return i.ord
}

// Status returns the current pickup/delivery sub-state.
func (i *Item) Status() ItemStatus {
	return i.status
}

// markPickedUp transitions Ready -> PickedUp. Called only from the parent
// Delivery's bulk transition.
func (i *Item) markPickedUp() error {
	if i.status != ItemReady {
		return errs.NewInvalidStateTransitionError(i.status.String(), ItemPickedUp.String())
	}
	i.status = ItemPickedUp
	return nil
}

// markDelivered transitions PickedUp -> Delivered. Called only from the
// parent Delivery's bulk transition.
func (i *Item) markDelivered() error {
	if i.status != ItemPickedUp {
		return errs.NewInvalidStateTransitionError(i.status.String(), ItemDelivered.String())
	}
	i.status = ItemDelivered
	return nil
}
