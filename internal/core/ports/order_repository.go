package ports

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must serialize writes per aggregate (single writer per
// order id); the aggregates themselves are not safe for concurrent
// mutation.
type OrderRepository interface {
	// Save persists an order aggregate, inserting or updating as needed.
	Save(ctx context.Context, aggregate *order.Order) error

	// FindByID retrieves an order by its unique identifier.
	// Returns errs.ErrObjectNotFound when no such order exists.
	FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// FindAll retrieves every stored order.
	FindAll(ctx context.Context) ([]*order.Order, error)

	// FindByStatus retrieves all orders in the given lifecycle status.
	FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error)

	// FindByType retrieves all orders of the given fulfillment type.
	FindByType(ctx context.Context, orderType order.Type) ([]*order.Order, error)

	// FindByCreatedAtBetween retrieves orders created in [start, end].
	FindByCreatedAtBetween(ctx context.Context, start, end time.Time) ([]*order.Order, error)

	// DeleteByID removes an order, reporting whether it existed.
	DeleteByID(ctx context.Context, id kernel.UUID) (bool, error)

	// ExistsByID reports whether an order with the given id is stored.
	ExistsByID(ctx context.Context, id kernel.UUID) (bool, error)
}
