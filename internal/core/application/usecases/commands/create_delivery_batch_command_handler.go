package commands

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// CreateDeliveryBatchCommandHandler loads the requested orders, asks the
// batch engine to form a delivery run from them, and publishes the
// delivery-created event. The engine's preconditions make the whole
// request atomic: any invalid order rejects the batch.
type CreateDeliveryBatchCommandHandler struct {
	orders    ports.OrderRepository
	engine    *services.DeliveryBatchEngine
	publisher ports.EventPublisher
}

// NewCreateDeliveryBatchCommandHandler creates a handler for explicit batching.
func NewCreateDeliveryBatchCommandHandler(
	orders ports.OrderRepository,
	engine *services.DeliveryBatchEngine,
	publisher ports.EventPublisher,
) (CreateDeliveryBatchCommandHandler, error) {
	if orders == nil {
		return CreateDeliveryBatchCommandHandler{}, errs.NewValueIsRequiredError("orders repository")
	}
	if engine == nil {
		return CreateDeliveryBatchCommandHandler{}, errs.NewValueIsRequiredError("batch engine")
	}
	if publisher == nil {
		return CreateDeliveryBatchCommandHandler{}, errs.NewValueIsRequiredError("event publisher")
	}

	return CreateDeliveryBatchCommandHandler{
		orders:    orders,
		engine:    engine,
		publisher: publisher,
	}, nil
}

// Handle processes the explicit batching command and returns the new
// delivery's identifier.
func (h *CreateDeliveryBatchCommandHandler) Handle(
	ctx context.Context, cmd CreateDeliveryBatchCommand,
) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	batch := make([]*order.Order, 0, len(cmd.OrderIDs()))
	for _, id := range cmd.OrderIDs() {
		ord, err := h.orders.FindByID(ctx, id)
		if err != nil {
			return kernel.UUID{}, err
		}
		batch = append(batch, ord)
	}

	d, err := h.engine.CreateDeliveryBatch(ctx, batch)
	if err != nil {
		return kernel.UUID{}, err
	}

	h.publisher.Publish(ctx, events.DeliveryCreated{
		DeliveryID: d.ID(),
		OrderIDs:   d.OrderIDs(),
		Timestamp:  time.Now().UTC(),
	})

	return d.ID(), nil
}
