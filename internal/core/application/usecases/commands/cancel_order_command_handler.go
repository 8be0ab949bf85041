package commands

import (
	"context"
	"log/slog"

	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order and, when a price was already
// settled, refunds the charged amount. The refund is best effort: a
// declined or failed refund does not undo the cancellation, it is logged
// for manual follow-up.
type CancelOrderCommandHandler struct {
	orders   ports.OrderRepository
	payments ports.PaymentGateway
	logger   *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	orders ports.OrderRepository,
	payments ports.PaymentGateway,
	logger *slog.Logger,
) (CancelOrderCommandHandler, error) {
	if orders == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("orders repository")
	}
	if payments == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("payment gateway")
	}
	if logger == nil {
		return CancelOrderCommandHandler{}, errs.NewValueIsRequiredError("logger")
	}

	return CancelOrderCommandHandler{
		orders:   orders,
		payments: payments,
		logger:   logger.With("component", "cancel_order_handler"),
	}, nil
}

// Handle processes the order cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ord, err := h.orders.FindByID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err := ord.Cancel(); err != nil {
		return err
	}

	if err := h.orders.Save(ctx, ord); err != nil {
		return err
	}

	if total := ord.TotalPrice(); total != nil {
		refunded, err := h.payments.RefundPayment(ctx, ord.ID(), *total)
		if err != nil || !refunded {
			h.logger.WarnContext(ctx, "Refund failed after cancellation",
				"order_id", ord.ID(), "amount", total.String(), "error", err)
		}
	}

	return nil
}
