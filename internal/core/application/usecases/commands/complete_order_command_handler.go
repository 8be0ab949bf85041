package commands

import (
	"context"

	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// CompleteOrderCommandHandler closes out a ready order.
type CompleteOrderCommandHandler struct {
	orders ports.OrderRepository
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(orders ports.OrderRepository) (CompleteOrderCommandHandler, error) {
	if orders == nil {
		return CompleteOrderCommandHandler{}, errs.NewValueIsRequiredError("orders repository")
	}

	return CompleteOrderCommandHandler{orders: orders}, nil
}

// Handle processes the order completion command.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ord, err := h.orders.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := ord.Complete(); err != nil {
		return err
	}

	return h.orders.Save(ctx, ord)
}
