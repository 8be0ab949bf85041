package commands

import (
	"errors"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"
)

var ErrCreateDeliveryBatchCommandIsNotConstructed = errors.New(
	"CreateDeliveryBatchCommand must be created via NewCreateDeliveryBatchCommand constructor",
)

// CreateDeliveryBatchCommand represents a request to batch an explicit set
// of ready delivery orders into one delivery run.
type CreateDeliveryBatchCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDeliveryBatchCommand creates a command to batch the given
// orders. The batching preconditions (type, status, capacity, not already
// batched) are enforced by the engine when the handler runs.
func NewCreateDeliveryBatchCommand(orderIDs []kernel.UUID) (CreateDeliveryBatchCommand, error) {
	if len(orderIDs) == 0 {
		return CreateDeliveryBatchCommand{}, errs.NewValueIsRequiredError("order ids")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return CreateDeliveryBatchCommand{}, err
		}
	}

	cmd := CreateDeliveryBatchCommand{
		orderIDs: make([]kernel.UUID, len(orderIDs)),
		guard:    guard.NewConstructorGuard(),
	}
	copy(cmd.orderIDs, orderIDs)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryBatchCommandIsNotConstructed)
}

// OrderIDs returns the identifiers of the orders to batch.
func (c CreateDeliveryBatchCommand) OrderIDs() []kernel.UUID {
	out := make([]kernel.UUID, len(c.orderIDs))
	copy(out, c.orderIDs)
	return out
}
