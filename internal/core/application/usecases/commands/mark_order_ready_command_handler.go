package commands

import (
	"context"
	"log/slog"
	"time"

	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// MarkOrderReadyCommandHandler marks a prepared order as ready and
// publishes the coffee-ready event. For delivery orders it additionally
// attempts an immediate batch: the fresh order plus any compatible peers,
// up to the delivery capacity. Immediate batching is best effort; a
// failure is logged and the order stays available for the periodic
// auto-batch run.
type MarkOrderReadyCommandHandler struct {
	orders    ports.OrderRepository
	engine    *services.DeliveryBatchEngine
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewMarkOrderReadyCommandHandler creates a handler for the ready transition.
func NewMarkOrderReadyCommandHandler(
	orders ports.OrderRepository,
	engine *services.DeliveryBatchEngine,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) (MarkOrderReadyCommandHandler, error) {
	if orders == nil {
		return MarkOrderReadyCommandHandler{}, errs.NewValueIsRequiredError("orders repository")
	}
	if engine == nil {
		return MarkOrderReadyCommandHandler{}, errs.NewValueIsRequiredError("batch engine")
	}
	if publisher == nil {
		return MarkOrderReadyCommandHandler{}, errs.NewValueIsRequiredError("event publisher")
	}
	if logger == nil {
		return MarkOrderReadyCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return MarkOrderReadyCommandHandler{
		orders:    orders,
		engine:    engine,
		publisher: publisher,
		logger:    logger.With("component", "mark_order_ready_handler"),
	}, nil
}

// Handle processes the ready transition.
func (h *MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ord, err := h.orders.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := ord.MarkAsReady(); err != nil {
		return err
	}

	if err := h.orders.Save(ctx, ord); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.CoffeeReady{
		OrderID:      ord.ID(),
		CustomerName: ord.CustomerName(),
		OrderType:    ord.Type().String(),
		Timestamp:    time.Now().UTC(),
	})

	if ord.Type() == order.TypeDelivery {
		h.tryImmediateBatch(ctx, ord)
	}

	return nil
}

// tryImmediateBatch batches the fresh order with compatible waiting peers.
func (h *MarkOrderReadyCommandHandler) tryImmediateBatch(ctx context.Context, ord *order.Order) {
	candidates, err := h.engine.FindBatchableOrders(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "Immediate batching skipped", "order_id", ord.ID(), "error", err)
		return
	}

	peers, err := h.engine.FindBatchableOrdersFor(ctx, ord, candidates)
	if err != nil {
		h.logger.WarnContext(ctx, "Immediate batching skipped", "order_id", ord.ID(), "error", err)
		return
	}

	batch := append([]*order.Order{ord}, peers...)
	if len(batch) > services.MaxOrdersPerDelivery {
		batch = batch[:services.MaxOrdersPerDelivery]
	}

	d, err := h.engine.CreateDeliveryBatch(ctx, batch)
	if err != nil {
		h.logger.WarnContext(ctx, "Immediate batching failed", "order_id", ord.ID(), "error", err)
		return
	}

	h.publisher.Publish(ctx, events.DeliveryCreated{
		DeliveryID: d.ID(),
		OrderIDs:   d.OrderIDs(),
		Timestamp:  time.Now().UTC(),
	})
}
