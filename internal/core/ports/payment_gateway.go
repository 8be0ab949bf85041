package ports

import (
	"context"

	"coffeeshop/internal/core/domain/model/kernel"
)

// PaymentGateway is the external payment capability. Both operations are
// synchronous: the boolean reports whether the payment provider accepted
// the request, the error covers transport or provider failures.
type PaymentGateway interface {
	// ProcessPayment charges the customer for an order.
	ProcessPayment(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (bool, error)

	// RefundPayment returns a previously charged amount for an order.
	RefundPayment(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (bool, error)
}
