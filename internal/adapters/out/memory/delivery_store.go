package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"
)

// DeliveryStore is a mutex-guarded in-memory delivery repository. It keeps
// an order-to-delivery index under the same lock as the primary map, so
// the at-most-one-delivery-per-order contract holds under concurrent
// Save calls.
type DeliveryStore struct {
	mu         sync.RWMutex
	deliveries map[kernel.UUID]*delivery.Delivery
	orderIndex map[kernel.UUID]kernel.UUID
}

// NewDeliveryStore creates an empty in-memory delivery store.
func NewDeliveryStore() *DeliveryStore {
	return &DeliveryStore{
		deliveries: make(map[kernel.UUID]*delivery.Delivery),
		orderIndex: make(map[kernel.UUID]kernel.UUID),
	}
}

// Save stores or replaces a delivery. Fails without side effects when one
// of its orders is already indexed under a different delivery.
func (s *DeliveryStore) Save(_ context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, orderID := range aggregate.OrderIDs() {
		if owner, ok := s.orderIndex[orderID]; ok && !owner.IsEqual(aggregate.ID()) {
			return errs.NewValueIsInvalidErrorWithCause("delivery orders",
				errors.New("order already belongs to another delivery"))
		}
	}

	s.deliveries[aggregate.ID()] = aggregate
	for _, orderID := range aggregate.OrderIDs() {
		s.orderIndex[orderID] = aggregate.ID()
	}

	return nil
}

// FindByID retrieves a delivery by identifier.
func (s *DeliveryStore) FindByID(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.deliveries[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id.String())
	}

	return d, nil
}

// FindByStatus retrieves all deliveries in the given lifecycle status.
func (s *DeliveryStore) FindByStatus(_ context.Context, status delivery.Status) ([]*delivery.Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return s.filter(func(d *delivery.Delivery) bool { return d.Status() == status }), nil
}

// FindByRiderID retrieves all deliveries assigned to the given rider.
func (s *DeliveryStore) FindByRiderID(_ context.Context, riderID string) ([]*delivery.Delivery, error) {
	if riderID == "" {
		return nil, errs.NewValueIsRequiredError("rider id")
	}

	return s.filter(func(d *delivery.Delivery) bool {
		return d.RiderInfo() != nil && d.RiderInfo().RiderID() == riderID
	}), nil
}

// FindByOrderID retrieves the delivery holding the given order.
func (s *DeliveryStore) FindByOrderID(_ context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	deliveryID, ok := s.orderIndex[orderID]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery by order", orderID.String())
	}

	return s.deliveries[deliveryID], nil
}

// FindActiveDeliveries retrieves all deliveries currently underway.
func (s *DeliveryStore) FindActiveDeliveries(_ context.Context) ([]*delivery.Delivery, error) {
	return s.filter(func(d *delivery.Delivery) bool { return d.IsActive() }), nil
}

// FindDeliveriesBetween retrieves deliveries created in [start, end].
func (s *DeliveryStore) FindDeliveriesBetween(
	_ context.Context, start, end time.Time,
) ([]*delivery.Delivery, error) {
	return s.filter(func(d *delivery.Delivery) bool {
		createdAt := d.CreatedAt()
		return !createdAt.Before(start) && !createdAt.After(end)
	}), nil
}

// FindAll retrieves every stored delivery, oldest first.
func (s *DeliveryStore) FindAll(_ context.Context) ([]*delivery.Delivery, error) {
	return s.filter(func(*delivery.Delivery) bool { return true }), nil
}

// DeleteByID removes a delivery and its index entries, reporting whether
// it existed.
func (s *DeliveryStore) DeleteByID(_ context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.deliveries[id]
	if !ok {
		return false, nil
	}

	for _, orderID := range d.OrderIDs() {
		delete(s.orderIndex, orderID)
	}
	delete(s.deliveries, id)

	return true, nil
}

// ExistsByID reports whether a delivery with the given id is stored.
func (s *DeliveryStore) ExistsByID(_ context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.deliveries[id]
	return ok, nil
}

// filter returns matching deliveries sorted by creation time.
func (s *DeliveryStore) filter(match func(*delivery.Delivery) bool) []*delivery.Delivery {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*delivery.Delivery, 0, len(s.deliveries))
	for _, d := range s.deliveries {
		if match(d) {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})

	return out
}
