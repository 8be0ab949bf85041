package services

import (
	"fmt"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"
)

// Fixed fees applied to delivery orders on top of the item total.
const (
	packagingFee = 2.00
	deliveryFee  = 5.00
)

// DineInPricingStrategy prices a dine-in order as the plain sum of its line
// totals.
type DineInPricingStrategy struct{}

// NewDineInPricingStrategy creates a new DineInPricingStrategy instance.
func NewDineInPricingStrategy() DineInPricingStrategy {
	return DineInPricingStrategy{}
}

// Calculate returns the sum of the order's line totals.
func (s DineInPricingStrategy) Calculate(o *order.Order) (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	return o.ItemsTotal()
}

// DeliveryPricingStrategy prices a delivery order as the sum of its line
// totals plus fixed packaging and delivery fees.
type DeliveryPricingStrategy struct{}

// NewDeliveryPricingStrategy creates a new DeliveryPricingStrategy instance.
func NewDeliveryPricingStrategy() DeliveryPricingStrategy {
	return DeliveryPricingStrategy{}
}

// Calculate returns items total + 2.00 packaging fee + 5.00 delivery fee.
func (s DeliveryPricingStrategy) Calculate(o *order.Order) (kernel.Money, error) {
	if err := o.Validate(); err != nil {
		return kernel.Money{}, err
	}

	total, err := o.ItemsTotal()
	if err != nil {
		return kernel.Money{}, err
	}

	packaging, err := kernel.NewMoneyFromFloat(packagingFee)
	if err != nil {
		return kernel.Money{}, err
	}
	total, err = total.Add(packaging)
	if err != nil {
		return kernel.Money{}, err
	}

	shipping, err := kernel.NewMoneyFromFloat(deliveryFee)
	if err != nil {
		return kernel.Money{}, err
	}

	return total.Add(shipping)
}

// PricingStrategyFactory maps an order type to its pricing strategy. The
// mapping is closed: asking for a type with no registered strategy is a
// configuration error, not a recoverable condition.
type PricingStrategyFactory struct {
	strategies map[order.Type]order.PricingStrategy
}

// NewPricingStrategyFactory creates a factory with the standard dine-in and
// delivery strategies registered.
func NewPricingStrategyFactory() PricingStrategyFactory {
	return PricingStrategyFactory{
		strategies: map[order.Type]order.PricingStrategy{
			order.TypeDineIn:   NewDineInPricingStrategy(),
			order.TypeDelivery: NewDeliveryPricingStrategy(),
		},
	}
}

// StrategyFor returns the pricing strategy for the given order type.
func (f PricingStrategyFactory) StrategyFor(orderType order.Type) (order.PricingStrategy, error) {
	strategy, ok := f.strategies[orderType]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("order type",
			fmt.Errorf("no pricing strategy registered for %s", orderType))
	}

	return strategy, nil
}
