// Package delivery contains the Delivery aggregate: a multi-order delivery
// run produced by the batching engine, with per-order tracking items,
// an at-most-once rider assignment, and a seven-state lifecycle.
//
// Item sub-states advance only through the parent delivery's bulk
// transitions (MarkAsPickedUp, MarkAsDelivered), keeping every item
// consistent with the run's lifecycle stage.
package delivery
