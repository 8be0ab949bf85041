// Package memory provides in-memory implementations of the repository
// ports. They back unit tests and local development; a mutex per store
// gives the single-writer-per-aggregate consistency the ports require.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"
)

// OrderStore is a mutex-guarded in-memory order repository.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[kernel.UUID]*order.Order
}

// NewOrderStore creates an empty in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[kernel.UUID]*order.Order),
	}
}

// Save stores or replaces an order.
func (s *OrderStore) Save(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[aggregate.ID()] = aggregate
	return nil
}

// FindByID retrieves an order by identifier.
func (s *OrderStore) FindByID(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ord, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	return ord, nil
}

// FindAll retrieves every stored order, oldest first.
func (s *OrderStore) FindAll(_ context.Context) ([]*order.Order, error) {
	return s.filter(func(*order.Order) bool { return true }), nil
}

// FindByStatus retrieves all orders in the given lifecycle status.
func (s *OrderStore) FindByStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return s.filter(func(o *order.Order) bool { return o.Status() == status }), nil
}

// FindByType retrieves all orders of the given fulfillment type.
func (s *OrderStore) FindByType(_ context.Context, orderType order.Type) ([]*order.Order, error) {
	if err := orderType.Validate(); err != nil {
		return nil, err
	}

	return s.filter(func(o *order.Order) bool { return o.Type() == orderType }), nil
}

// FindByCreatedAtBetween retrieves orders created in [start, end].
func (s *OrderStore) FindByCreatedAtBetween(_ context.Context, start, end time.Time) ([]*order.Order, error) {
	return s.filter(func(o *order.Order) bool {
		createdAt := o.CreatedAt()
		return !createdAt.Before(start) && !createdAt.After(end)
	}), nil
}

// DeleteByID removes an order, reporting whether it existed.
func (s *OrderStore) DeleteByID(_ context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return false, nil
	}

	delete(s.orders, id)
	return true, nil
}

// ExistsByID reports whether an order with the given id is stored.
func (s *OrderStore) ExistsByID(_ context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.orders[id]
	return ok, nil
}

// filter returns matching orders sorted by creation time.
func (s *OrderStore) filter(match func(*order.Order) bool) []*order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*order.Order, 0, len(s.orders))
	for _, ord := range s.orders {
		if match(ord) {
			out = append(out, ord)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})

	return out
}
