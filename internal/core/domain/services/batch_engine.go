package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"

	"github.com/samber/lo"
)

const (
	// MaxOrdersPerDelivery caps how many orders a single delivery run carries.
	MaxOrdersPerDelivery = 5

	// BatchingTimeWindow is the symmetric window (± around a reference
	// time, boundary inclusive) within which orders may batch together.
	BatchingTimeWindow = 15 * time.Minute

	// unknownAddressKey groups orders with no address during auto-batching.
	unknownAddressKey = "UNKNOWN"
)

// DeliveryBatchEngine groups ready delivery orders into delivery runs.
//
// Batching rules:
//   - Only DELIVERY-typed orders in READY status that are not yet attached
//     to a delivery are eligible.
//   - Orders batch together only when their address strings match exactly.
//   - A batch never exceeds MaxOrdersPerDelivery orders.
//   - An order joins a batch only when its creation time is within
//     BatchingTimeWindow of the batch's anchor time (boundary inclusive).
//
// The engine is synchronous: each operation reads store state, decides, and
// writes. The "not already batched" check and the subsequent save are not
// atomic here; the delivery store's consistency contract (at most one
// delivery per order, enforced on Save) closes that race.
type DeliveryBatchEngine struct {
	orders     ports.OrderRepository
	deliveries ports.DeliveryRepository
	logger     *slog.Logger
}

// NewDeliveryBatchEngine creates a batching engine over the given stores.
func NewDeliveryBatchEngine(
	orders ports.OrderRepository,
	deliveries ports.DeliveryRepository,
	logger *slog.Logger,
) (*DeliveryBatchEngine, error) {
	if orders == nil {
		return nil, errs.NewValueIsRequiredError("orders repository")
	}
	if deliveries == nil {
		return nil, errs.NewValueIsRequiredError("deliveries repository")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &DeliveryBatchEngine{
		orders:     orders,
		deliveries: deliveries,
		logger:     logger.With("component", "delivery_batch_engine"),
	}, nil
}

// CreateDeliveryBatch validates a batch of orders and turns it into a
// persisted delivery run. The whole request is atomic: any violated
// precondition (empty batch, oversize, wrong type or status, order already
// batched) rejects the batch and creates nothing.
func (e *DeliveryBatchEngine) CreateDeliveryBatch(
	ctx context.Context, orders []*order.Order,
) (*delivery.Delivery, error) {
	if len(orders) == 0 {
		return nil, errs.NewValueIsRequiredError("batch orders")
	}
	if len(orders) > MaxOrdersPerDelivery {
		return nil, errs.NewValueIsOutOfRangeError("batch size", len(orders), 1, MaxOrdersPerDelivery)
	}

	for _, ord := range orders {
		if err := e.validateBatchable(ctx, ord); err != nil {
			return nil, err
		}
	}

	d, err := delivery.NewDelivery(kernel.NewUUID(), orders)
	if err != nil {
		return nil, err
	}

	if err := e.deliveries.Save(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

// FindBatchableOrders returns every READY delivery order not yet attached
// to a delivery run. Result ordering is unspecified.
func (e *DeliveryBatchEngine) FindBatchableOrders(ctx context.Context) ([]*order.Order, error) {
	ready, err := e.orders.FindByStatus(ctx, order.Ready)
	if err != nil {
		return nil, err
	}

	batchable := make([]*order.Order, 0, len(ready))
	for _, ord := range ready {
		if ord.Type() != order.TypeDelivery {
			continue
		}

		batched, err := e.isAlreadyBatched(ctx, ord.ID())
		if err != nil {
			return nil, err
		}
		if !batched {
			batchable = append(batchable, ord)
		}
	}

	return batchable, nil
}

// CanBatchWith reports whether candidate can join the batch formed by
// peers: it must be an unbatched ready delivery order, the batch must have
// room, its creation time must fall within the window around the earliest
// peer, and its address must match the first peer's exactly.
func (e *DeliveryBatchEngine) CanBatchWith(
	ctx context.Context, candidate *order.Order, peers []*order.Order,
) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}
	if len(peers) == 0 || len(peers) >= MaxOrdersPerDelivery {
		return false, nil
	}

	if candidate.Type() != order.TypeDelivery || candidate.Status() != order.Ready {
		return false, nil
	}

	batched, err := e.isAlreadyBatched(ctx, candidate.ID())
	if err != nil {
		return false, err
	}
	if batched {
		return false, nil
	}

	anchor := peers[0].CreatedAt()
	for _, peer := range peers[1:] {
		if peer.CreatedAt().Before(anchor) {
			anchor = peer.CreatedAt()
		}
	}
	if !withinWindow(candidate.CreatedAt(), anchor) {
		return false, nil
	}

	return addressKey(candidate) == addressKey(peers[0]), nil
}

// FindBatchableOrdersFor filters candidates down to those that could batch
// with the reference order. The reference itself is excluded.
func (e *DeliveryBatchEngine) FindBatchableOrdersFor(
	ctx context.Context, reference *order.Order, candidates []*order.Order,
) ([]*order.Order, error) {
	if err := reference.Validate(); err != nil {
		return nil, err
	}

	matches := make([]*order.Order, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.IsEqual(reference) {
			continue
		}

		ok, err := e.CanBatchWith(ctx, candidate, []*order.Order{reference})
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, candidate)
		}
	}

	return matches, nil
}

// AutoBatchOrders scans all batchable orders and partitions them into
// delivery runs: sort by creation time, group by exact address string,
// then greedily batch each group in time order. A batch flushes when it
// reaches MaxOrdersPerDelivery or when the next order falls outside the
// window of the batch's anchor; the next order then anchors a fresh batch.
//
// A flush whose batch creation fails is dropped for this invocation; the
// orders stay unbatched and are only reconsidered by the next run. The
// drop is logged at warn level.
//
// Returns the deliveries created, in flush order. Address groups are
// processed in sorted key order so the output is deterministic.
func (e *DeliveryBatchEngine) AutoBatchOrders(ctx context.Context) ([]*delivery.Delivery, error) {
	batchable, err := e.FindBatchableOrders(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(batchable, func(i, j int) bool {
		return batchable[i].CreatedAt().Before(batchable[j].CreatedAt())
	})

	groups := lo.GroupBy(batchable, func(ord *order.Order) string {
		return addressKey(ord)
	})

	keys := lo.Keys(groups)
	sort.Strings(keys)

	var created []*delivery.Delivery
	for _, key := range keys {
		created = e.batchAddressGroup(ctx, groups[key], created)
	}

	return created, nil
}

// batchAddressGroup greedily scans one address group in time order,
// appending every successfully flushed delivery to created.
func (e *DeliveryBatchEngine) batchAddressGroup(
	ctx context.Context, group []*order.Order, created []*delivery.Delivery,
) []*delivery.Delivery {
	var batch []*order.Order
	var anchor time.Time

	for _, ord := range group {
		switch {
		case len(batch) == 0:
			batch = append(batch, ord)
			anchor = ord.CreatedAt()
		case !withinWindow(ord.CreatedAt(), anchor):
			created = e.flush(ctx, batch, created)
			batch = []*order.Order{ord}
			anchor = ord.CreatedAt()
		default:
			batch = append(batch, ord)
		}

		if len(batch) == MaxOrdersPerDelivery {
			created = e.flush(ctx, batch, created)
			batch = nil
		}
	}

	if len(batch) > 0 {
		created = e.flush(ctx, batch, created)
	}

	return created
}

// flush turns the accumulated batch into a delivery run. Failures drop the
// batch for this invocation.
func (e *DeliveryBatchEngine) flush(
	ctx context.Context, batch []*order.Order, created []*delivery.Delivery,
) []*delivery.Delivery {
	d, err := e.CreateDeliveryBatch(ctx, batch)
	if err != nil {
		ids := make([]string, 0, len(batch))
		for _, ord := range batch {
			ids = append(ids, ord.ID().String())
		}
		e.logger.WarnContext(ctx, "Dropping batch that failed to flush",
			"orders", ids, "error", err)
		return created
	}

	return append(created, d)
}

// validateBatchable checks one order's CreateDeliveryBatch preconditions.
func (e *DeliveryBatchEngine) validateBatchable(ctx context.Context, ord *order.Order) error {
	if err := ord.Validate(); err != nil {
		return err
	}

	if ord.Type() != order.TypeDelivery {
		return errs.NewValueIsInvalidErrorWithCause("batch orders",
			fmt.Errorf("order %s is %s, not DELIVERY", ord.ID(), ord.Type()))
	}
	if ord.Status() != order.Ready {
		return errs.NewValueIsInvalidErrorWithCause("batch orders",
			fmt.Errorf("order %s is %s, not READY", ord.ID(), ord.Status()))
	}

	batched, err := e.isAlreadyBatched(ctx, ord.ID())
	if err != nil {
		return err
	}
	if batched {
		return errs.NewValueIsInvalidErrorWithCause("batch orders",
			fmt.Errorf("order %s already belongs to a delivery", ord.ID()))
	}

	return nil
}

// isAlreadyBatched consults the order-to-delivery index.
func (e *DeliveryBatchEngine) isAlreadyBatched(ctx context.Context, orderID kernel.UUID) (bool, error) {
	_, err := e.deliveries.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// withinWindow reports whether t falls within the batching window around
// anchor, boundary inclusive on both sides.
func withinWindow(t, anchor time.Time) bool {
	diff := t.Sub(anchor)
	if diff < 0 {
		diff = -diff
	}
	return diff <= BatchingTimeWindow
}

// addressKey renders an order's address as the exact-match grouping key.
func addressKey(ord *order.Order) string {
	if ord.Address() == nil {
		return unknownAddressKey
	}
	return ord.Address().String()
}
