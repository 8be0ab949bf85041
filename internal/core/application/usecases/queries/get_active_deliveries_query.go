package queries

import (
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/guard"
)

var ErrGetActiveDeliveriesQueryIsNotConstructed = errors.New(
	"GetActiveDeliveriesQuery must be created via NewGetActiveDeliveriesQuery constructor",
)

// GetActiveDeliveriesQuery retrieves all delivery runs currently underway
// (assigned, picked up, or in transit) for dispatcher dashboards.
type GetActiveDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveDeliveriesQuery creates a query to retrieve active delivery
// runs. This is a parameterless query.
func NewGetActiveDeliveriesQuery() GetActiveDeliveriesQuery {
	return GetActiveDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveDeliveriesQueryIsNotConstructed)
}

// GetActiveDeliveriesQueryResponse represents one active delivery run row.
// RiderName is nil when no rider has been assigned yet; PickupTime is nil
// until the run is picked up.
type GetActiveDeliveriesQueryResponse struct {
	ID         kernel.UUID
	Status     string
	RiderName  *string
	OrderCount int
	PickupTime *time.Time
	CreatedAt  time.Time
}
