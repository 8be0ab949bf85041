// Package order contains the Order aggregate and its value objects: order
// lines (Item), the delivery Address, the fulfillment Type, and the
// lifecycle Status state machine.
//
// Orders move Created -> Settled -> Preparing -> Ready -> Completed, with
// Cancelled reachable from every non-terminal state. Settlement computes
// the total price through a PricingStrategy and is the only transition that
// cannot be driven through TransitionTo.
package order
