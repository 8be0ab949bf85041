package commands

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// AutoBatchOrdersCommandHandler runs the bulk batching policy and publishes
// a delivery-created event per formed run.
type AutoBatchOrdersCommandHandler struct {
	engine    *services.DeliveryBatchEngine
	publisher ports.EventPublisher
}

// NewAutoBatchOrdersCommandHandler creates a handler for bulk batching.
func NewAutoBatchOrdersCommandHandler(
	engine *services.DeliveryBatchEngine,
	publisher ports.EventPublisher,
) (AutoBatchOrdersCommandHandler, error) {
	if engine == nil {
		return AutoBatchOrdersCommandHandler{}, errs.NewValueIsRequiredError("batch engine")
	}
	if publisher == nil {
		return AutoBatchOrdersCommandHandler{}, errs.NewValueIsRequiredError("event publisher")
	}

	return AutoBatchOrdersCommandHandler{
		engine:    engine,
		publisher: publisher,
	}, nil
}

// Handle runs the bulk batching policy and returns the identifiers of the
// deliveries created, in flush order.
func (h *AutoBatchOrdersCommandHandler) Handle(
	ctx context.Context, cmd AutoBatchOrdersCommand,
) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	created, err := h.engine.AutoBatchOrders(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(created))
	for _, d := range created {
		ids = append(ids, d.ID())
		h.publisher.Publish(ctx, events.DeliveryCreated{
			DeliveryID: d.ID(),
			OrderIDs:   d.OrderIDs(),
			Timestamp:  time.Now().UTC(),
		})
	}

	return ids, nil
}
