// Package payment provides a development implementation of the payment
// gateway port. Every charge and refund is approved and logged; a real
// provider integration replaces this adapter at composition time.
package payment

import (
	"context"
	"log/slog"

	"coffeeshop/internal/core/domain/model/kernel"
)

// LoggingGateway approves all payments and refunds, logging each one.
type LoggingGateway struct {
	logger *slog.Logger
}

// NewLoggingGateway creates an always-approve payment gateway.
func NewLoggingGateway(logger *slog.Logger) *LoggingGateway {
	return &LoggingGateway{
		logger: logger.With("component", "payment_gateway"),
	}
}

// ProcessPayment approves the charge.
func (g *LoggingGateway) ProcessPayment(
	ctx context.Context, orderID kernel.UUID, amount kernel.Money,
) (bool, error) {
	g.logger.InfoContext(ctx, "Processing payment",
		"order_id", orderID, "amount", amount.String())
	return true, nil
}

// RefundPayment approves the refund.
func (g *LoggingGateway) RefundPayment(
	ctx context.Context, orderID kernel.UUID, amount kernel.Money,
) (bool, error) {
	g.logger.InfoContext(ctx, "Refunding payment",
		"order_id", orderID, "amount", amount.String())
	return true, nil
}
