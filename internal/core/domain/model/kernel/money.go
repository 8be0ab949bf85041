package kernel

import (
	"errors"
	"fmt"

	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places every Money amount carries.
// Amounts are rounded half-up to this scale at construction.
const moneyScale = 2

// ErrMoneyIsNotConstructed is returned when validating a zero-value Money.
// Money must be created via NewMoney, NewMoneyFromFloat, or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, NewMoneyFromFloat, or ZeroMoney constructors")

// Money is an immutable, non-negative monetary amount with two decimal
// places. Arithmetic returns a new Money; a subtraction that would go
// negative is rejected as invalid input.
//
// Example:
//
//	price, _ := kernel.NewMoneyFromFloat(4.50)
//	total, _ := price.MultiplyInt(2) // 9.00
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney creates a Money from a decimal amount. Negative amounts are
// rejected; the amount is rounded half-up to two decimal places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}

	return Money{
		amount: amount.Round(moneyScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewMoneyFromFloat creates a Money from a float amount, applying the same
// non-negative and rounding rules as NewMoney.
func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// ZeroMoney returns a valid Money of 0.00, the identity for Add.
func ZeroMoney() Money {
	return Money{
		amount: decimal.Zero,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate checks that the Money was created through a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Float64 returns the amount as a float, for display and DTO mapping only.
func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}

	return NewMoney(m.amount.Add(other.amount))
}

// Subtract returns the difference of two amounts. A result below zero is a
// fatal input error: Money never represents a negative value.
func (m Money) Subtract(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}

	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money subtraction",
			fmt.Errorf("%s - %s yields a negative amount", m.String(), other.String()),
		)
	}

	return NewMoney(result)
}

// MultiplyInt returns the amount multiplied by a non-negative integer
// factor, e.g. a unit price times a quantity.
func (m Money) MultiplyInt(factor int) (Money, error) {
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	if factor < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money factor",
			fmt.Errorf("%d is negative", factor),
		)
	}

	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(factor))))
}

// IsEqual compares two amounts by value.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimal places, e.g. "17.00".
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
