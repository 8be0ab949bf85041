package delivery

import (
	"errors"
	"fmt"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrOrdersAreRequired is returned when attempting to create a delivery with no orders.
	ErrOrdersAreRequired = errs.NewValueIsRequiredError("delivery orders")
)

// Delivery is the aggregate root for a multi-order delivery run. It owns
// one Item per batched order, an optional rider assignment, and the run's
// lifecycle status.
//
// Key invariants:
//   - Constructed only from orders in Ready status, at least one
//   - The item list is fixed at construction; only item sub-state mutates
//   - A rider is assigned at most once
//   - pickupTime and deliveryTime are stamped exactly once, at their
//     respective transitions
//   - The two bulk transitions (MarkAsPickedUp, MarkAsDelivered) check
//     every item before mutating any, so a failed transition leaves the
//     whole aggregate untouched
type Delivery struct {
	// id is the unique identifier for the delivery run
	id kernel.UUID
	// items track each batched order's pickup/delivery sub-state
	items []*Item
	// riderInfo is the assigned rider (nil until Assigned)
	riderInfo *RiderInfo
	// status is the current lifecycle state
	status Status
	// pickupTime is stamped at the PickedUp transition
	pickupTime *time.Time
	// deliveryTime is stamped at the Delivered transition
	deliveryTime *time.Time
	// createdAt is when the batch was formed
	createdAt time.Time
	// updatedAt is bumped on every successful mutation
	updatedAt time.Time
	// guard ensures the delivery was properly constructed
	guard guard.ConstructorGuard
}

// NewDelivery creates a new delivery run in Created status from a batch of
// ready orders. Every order must be in Ready status; each gets wrapped in
// an Item starting at ItemReady.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - orders: The batched orders (at least one, all Ready)
//
// Returns the created delivery, or a validation error naming the first
// order that is not ready.
func NewDelivery(id kernel.UUID, orders []*order.Order) (*Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrdersAreRequired
	}

	items := make([]*Item, 0, len(orders))
	for _, ord := range orders {
		if err := ord.Validate(); err != nil {
			return nil, err
		}
		if ord.Status() != order.Ready {
			return nil, errs.NewValueIsInvalidErrorWithCause("delivery orders",
				fmt.Errorf("order %s is %s, not READY", ord.ID(), ord.Status()))
		}

		item, err := newItem(ord)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	now := time.Now().UTC()
	return &Delivery{
		id:        id,
		items:     items,
		status:    StatusCreated,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreDelivery reconstructs a delivery run from persistent storage with
// its items, rider, status, and timestamps.
func RestoreDelivery(
	id kernel.UUID,
	items []*Item,
	riderInfo *RiderInfo,
	status Status,
	pickupTime *time.Time,
	deliveryTime *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Delivery, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrdersAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if riderInfo != nil {
		if err := riderInfo.Validate(); err != nil {
			return nil, err
		}
	}

	d := &Delivery{
		id:           id,
		riderInfo:    riderInfo,
		status:       status,
		pickupTime:   pickupTime,
		deliveryTime: deliveryTime,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		guard:        guard.NewConstructorGuard(),
	}
	d.items = make([]*Item, len(items))
	copy(d.items, items)

	return d, nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// Items returns a copy of the per-order tracking items.
func (d *Delivery) Items() []*Item {
	out := make([]*Item, len(d.items))
	copy(out, d.items)
	return out
}

// Orders returns the wrapped orders in batch order.
func (d *Delivery) Orders() []*order.Order {
	out := make([]*order.Order, 0, len(d.items))
	for _, item := range d.items {
		out = append(out, item.Order())
	}
	return out
}

// OrderIDs returns the wrapped orders' identifiers in batch order.
func (d *Delivery) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(d.items))
	for _, item := range d.items {
		out = append(out, item.OrderID())
	}
	return out
}

// RiderInfo returns the assigned rider, or nil before assignment.
func (d *Delivery) RiderInfo() *RiderInfo {
	return d.riderInfo
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// PickupTime returns when the run was picked up, or nil before that.
func (d *Delivery) PickupTime() *time.Time {
	return d.pickupTime
}

// DeliveryTime returns when the run was delivered, or nil before that.
func (d *Delivery) DeliveryTime() *time.Time {
	return d.deliveryTime
}

// CreatedAt returns when the batch was formed.
func (d *Delivery) CreatedAt() time.Time {
	return d.createdAt
}

// UpdatedAt returns when the delivery was last mutated.
func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// IsActive reports whether the run is currently underway (assigned through
// in-transit).
func (d *Delivery) IsActive() bool {
	return d.status.IsActive()
}

// IsTerminal reports whether the run has finished, successfully or not.
func (d *Delivery) IsTerminal() bool {
	return d.status.IsTerminal()
}

// AssignRider assigns a rider to the run and advances Created -> Assigned.
// A delivery holds at most one rider; calling this in any other status,
// including Assigned, is rejected.
func (d *Delivery) AssignRider(info RiderInfo) error {
	if err := info.Validate(); err != nil {
		return err
	}

	newStatus, err := d.status.Assign()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.riderInfo = &info
	d.touch()
	return nil
}

// MarkAsPickedUp advances Assigned -> PickedUp, stamps the pickup time, and
// bulk-transitions every item from Ready to PickedUp. All items are checked
// before any is mutated.
func (d *Delivery) MarkAsPickedUp() error {
	newStatus, err := d.status.PickUp()
	if err != nil {
		return err
	}

	for _, item := range d.items {
		if item.Status() != ItemReady {
			return errs.NewInvalidStateTransitionError(item.Status().String(), ItemPickedUp.String())
		}
	}

	for _, item := range d.items {
		if err := item.markPickedUp(); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	d.status = newStatus
	d.pickupTime = &now
	d.touch()
	return nil
}

// MarkAsInTransit advances PickedUp -> InTransit.
func (d *Delivery) MarkAsInTransit() error {
	newStatus, err := d.status.StartTransit()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.touch()
	return nil
}

// MarkAsDelivered advances InTransit -> Delivered, stamps the delivery
// time, and bulk-transitions every item from PickedUp to Delivered. All
// items are checked before any is mutated.
func (d *Delivery) MarkAsDelivered() error {
	newStatus, err := d.status.Deliver()
	if err != nil {
		return err
	}

	for _, item := range d.items {
		if item.Status() != ItemPickedUp {
			return errs.NewInvalidStateTransitionError(item.Status().String(), ItemDelivered.String())
		}
	}

	for _, item := range d.items {
		if err := item.markDelivered(); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	d.status = newStatus
	d.deliveryTime = &now
	d.touch()
	return nil
}

// Complete advances Delivered -> Completed.
func (d *Delivery) Complete() error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.touch()
	return nil
}

// Cancel moves the run to Cancelled. Only possible from Created or
// Assigned; once the rider has the orders the run must play out.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.touch()
	return nil
}

// touch bumps the updatedAt timestamp after a successful mutation.
func (d *Delivery) touch() {
	d.updatedAt = time.Now().UTC()
}
