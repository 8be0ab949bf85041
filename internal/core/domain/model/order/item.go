package order

import (
	"errors"
	"fmt"
	"strings"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when validating a zero-value Item.
var ErrItemIsNotConstructed = errs.NewValueIsRequiredError(
	"order item must be created via NewItem constructor")

// Item is an immutable order line: a product, a positive quantity, and a
// unit price. The line total is computed once at construction and never
// changes afterwards.
type Item struct { //nolint:recvcheck //using for validation
	productName string
	quantity    int
	unitPrice   kernel.Money
	totalPrice  kernel.Money

	guard guard.ConstructorGuard
}

// NewItem creates a validated order line. The product name is trimmed and
// must be non-empty, the quantity must be positive, and the unit price must
// be a constructed Money value.
func NewItem(productName string, quantity int, unitPrice kernel.Money) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductName(productName),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return Item{}, err
	}

	totalPrice, err := unitPrice.MultiplyInt(quantity)
	if err != nil {
		return Item{}, err
	}
	item.totalPrice = totalPrice

	return item, nil
}

// Validate ensures the Item was created through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductName returns the trimmed product name.
func (i Item) ProductName() string {
	return i.productName
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price of a single unit.
func (i Item) UnitPrice() kernel.Money {
	return i.unitPrice
}

// TotalPrice returns unit price times quantity, fixed at construction.
func (i Item) TotalPrice() kernel.Money {
	return i.totalPrice
}

// IsEqual compares two items by value (name, quantity, unit price).
func (i Item) IsEqual(other Item) bool {
	return i.productName == other.productName &&
		i.quantity == other.quantity &&
		i.unitPrice.IsEqual(other.unitPrice)
}

func (i *Item) setProductName(productName string) error {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return errs.NewValueIsRequiredError("product name")
	}

	i.productName = productName
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice kernel.Money) error {
	if err := unitPrice.Validate(); err != nil {
		return err
	}

	i.unitPrice = unitPrice
	return nil
}
