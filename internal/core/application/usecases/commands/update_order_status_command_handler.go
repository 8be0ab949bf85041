package commands

import (
	"context"

	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// ErrSettlementNotDispatchable is returned when a status update requests
// the Settled status. Settlement needs a pricing strategy and happens as
// part of order placement, never through the generic dispatcher.
var ErrSettlementNotDispatchable = errs.NewValueIsInvalidError(
	"settlement cannot be requested as a status update")

// UpdateOrderStatusCommandHandler maps a target status onto the dedicated
// transition handler for it, so every path through the system runs the
// same domain logic (ready triggers batching, cancellation triggers
// refunds) regardless of whether the caller used the generic endpoint or
// the specific one.
type UpdateOrderStatusCommandHandler struct {
	orders      ports.OrderRepository
	markReady   MarkOrderReadyCommandHandler
	completeCmd CompleteOrderCommandHandler
	cancelCmd   CancelOrderCommandHandler
}

// NewUpdateOrderStatusCommandHandler creates the status update dispatcher.
func NewUpdateOrderStatusCommandHandler(
	orders ports.OrderRepository,
	markReady MarkOrderReadyCommandHandler,
	completeCmd CompleteOrderCommandHandler,
	cancelCmd CancelOrderCommandHandler,
) (UpdateOrderStatusCommandHandler, error) {
	if orders == nil {
		return UpdateOrderStatusCommandHandler{}, errs.NewValueIsRequiredError("orders repository")
	}

	return UpdateOrderStatusCommandHandler{
		orders:      orders,
		markReady:   markReady,
		completeCmd: completeCmd,
		cancelCmd:   cancelCmd,
	}, nil
}

// Handle dispatches the requested status to the matching transition.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.Target() {
	case order.Settled:
		return ErrSettlementNotDispatchable
	case order.Preparing:
		return h.startPreparing(ctx, cmd)
	case order.Ready:
		readyCmd, err := NewMarkOrderReadyCommand(cmd.OrderID())
		if err != nil {
			return err
		}
		return h.markReady.Handle(ctx, readyCmd)
	case order.Completed:
		completeCmd, err := NewCompleteOrderCommand(cmd.OrderID())
		if err != nil {
			return err
		}
		return h.completeCmd.Handle(ctx, completeCmd)
	case order.Cancelled:
		cancelCmd, err := NewCancelOrderCommand(cmd.OrderID())
		if err != nil {
			return err
		}
		return h.cancelCmd.Handle(ctx, cancelCmd)
	case order.Unknown, order.Created:
		fallthrough
	default:
		return errs.NewValueIsInvalidError("target status")
	}
}

func (h *UpdateOrderStatusCommandHandler) startPreparing(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	ord, err := h.orders.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := ord.StartPreparing(); err != nil {
		return err
	}

	return h.orders.Save(ctx, ord)
}
