package commands

import (
	"context"
	"fmt"
	"time"

	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// ErrPaymentDeclined is returned when the payment provider rejects the
// charge for a new order. Nothing is persisted in that case.
var ErrPaymentDeclined = errs.NewValueIsInvalidError("payment was declined")

// PlaceOrderCommandHandler places a new order end to end: it builds the
// aggregate, settles the price with the strategy matching the order type,
// charges the customer, moves the order into preparation, persists it, and
// publishes the order-created event.
//
// The sequence is atomic from the caller's view: a failure at any step
// before Save leaves nothing persisted.
type PlaceOrderCommandHandler struct {
	orders    ports.OrderRepository
	payments  ports.PaymentGateway
	publisher ports.EventPublisher
	pricing   services.PricingStrategyFactory
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	orders ports.OrderRepository,
	payments ports.PaymentGateway,
	publisher ports.EventPublisher,
	pricing services.PricingStrategyFactory,
) (PlaceOrderCommandHandler, error) {
	if orders == nil {
		return PlaceOrderCommandHandler{}, errs.NewValueIsRequiredError("orders repository")
	}
	if payments == nil {
		return PlaceOrderCommandHandler{}, errs.NewValueIsRequiredError("payment gateway")
	}
	if publisher == nil {
		return PlaceOrderCommandHandler{}, errs.NewValueIsRequiredError("event publisher")
	}

	return PlaceOrderCommandHandler{
		orders:    orders,
		payments:  payments,
		publisher: publisher,
		pricing:   pricing,
	}, nil
}

// Handle processes the order placement command.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	exists, err := h.orders.ExistsByID(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("order %s already exists", cmd.OrderID()))
	}

	newOrder, err := h.buildOrder(cmd)
	if err != nil {
		return err
	}

	strategy, err := h.pricing.StrategyFor(newOrder.Type())
	if err != nil {
		return err
	}
	if err := newOrder.Settle(strategy); err != nil {
		return err
	}

	approved, err := h.payments.ProcessPayment(ctx, newOrder.ID(), *newOrder.TotalPrice())
	if err != nil {
		return err
	}
	if !approved {
		return ErrPaymentDeclined
	}

	if err := newOrder.StartPreparing(); err != nil {
		return err
	}

	if err := h.orders.Save(ctx, newOrder); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.OrderCreated{
		OrderID:      newOrder.ID(),
		CustomerName: newOrder.CustomerName(),
		OrderType:    newOrder.Type().String(),
		Timestamp:    time.Now().UTC(),
	})

	return nil
}

// buildOrder maps the raw command inputs into a validated Order aggregate.
func (h *PlaceOrderCommandHandler) buildOrder(cmd PlaceOrderCommand) (*order.Order, error) {
	items := make([]order.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		unitPrice, err := kernel.NewMoneyFromFloat(input.UnitPrice)
		if err != nil {
			return nil, err
		}

		item, err := order.NewItem(input.ProductName, input.Quantity, unitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	var address *order.Address
	if input := cmd.Address(); input != nil {
		a, err := order.NewAddress(input.Street, input.City, input.PostalCode, input.Country)
		if err != nil {
			return nil, err
		}
		address = &a
	}

	return order.NewOrder(cmd.OrderID(), cmd.CustomerName(), cmd.OrderType(), items, address)
}
