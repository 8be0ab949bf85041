package ports

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery
// aggregates. Besides per-aggregate single-writer semantics (see
// OrderRepository), implementations must keep the order-to-delivery link
// consistent: Save must fail if any of the delivery's orders is already
// attached to a different delivery, so that at most one delivery ever
// holds a given order. FindByOrderID is the index the batching engine
// uses for its "already batched" check.
type DeliveryRepository interface {
	// Save persists a delivery aggregate, inserting or updating as needed.
	// Fails when one of its orders already belongs to another delivery.
	Save(ctx context.Context, aggregate *delivery.Delivery) error

	// FindByID retrieves a delivery by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such delivery exists.
	FindByID(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// FindByStatus retrieves all deliveries in the given lifecycle status.
	FindByStatus(ctx context.Context, status delivery.Status) ([]*delivery.Delivery, error)

	// FindByRiderID retrieves all deliveries assigned to the given rider.
	FindByRiderID(ctx context.Context, riderID string) ([]*delivery.Delivery, error)

	// FindByOrderID retrieves the delivery holding the given order, if any.
	// Returns errs.ErrObjectNotFound when the order is not batched.
	FindByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// FindActiveDeliveries retrieves all deliveries currently underway
	// (assigned, picked up, or in transit).
	FindActiveDeliveries(ctx context.Context) ([]*delivery.Delivery, error)

	// FindDeliveriesBetween retrieves deliveries created in [start, end].
	FindDeliveriesBetween(ctx context.Context, start, end time.Time) ([]*delivery.Delivery, error)

	// FindAll retrieves every stored delivery.
	FindAll(ctx context.Context) ([]*delivery.Delivery, error)

	// DeleteByID removes a delivery, reporting whether it existed.
	DeleteByID(ctx context.Context, id kernel.UUID) (bool, error)

	// ExistsByID reports whether a delivery with the given id is stored.
	ExistsByID(ctx context.Context, id kernel.UUID) (bool, error)
}
