package order

import (
	"fmt"

	"coffeeshop/internal/pkg/errs"
)

// Type distinguishes how an order is fulfilled. It drives pricing strategy
// selection and delivery-batching eligibility: only TypeDelivery orders are
// ever batched, and only they carry an address.
type Type int

const (
	// TypeUnknown is the invalid zero value.
	TypeUnknown Type = iota

	// TypeDineIn orders are consumed on premises and have no address.
	TypeDineIn

	// TypeDelivery orders are dispatched to an address and are subject to
	// packaging and delivery fees.
	TypeDelivery
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeDineIn:   "DINE_IN",
		TypeDelivery: "DELIVERY",
	}
}

// Validate checks that the Type is one of the declared values.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order type",
			fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the wire name of the type ("DINE_IN" or "DELIVERY").
func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// TypeFromString parses a wire name back into a Type.
func TypeFromString(s string) (Type, error) {
	for t, name := range getTypeStrings() {
		if name == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type",
		fmt.Errorf("%q is not a valid order type", s))
}
