// Package events defines the domain events published on the best-effort
// event sink. Each event is a plain tagged record: Kind returns a stable
// name used by subscribers and log output; payloads carry only primitive
// data so events stay decoupled from aggregate internals.
package events

import (
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
)

// Event is implemented by every domain event.
type Event interface {
	// Kind returns the stable event name, e.g. "order.created".
	Kind() string
	// OccurredAt returns when the event was raised.
	OccurredAt() time.Time
}

// OrderCreated is published when a new order has been placed and settled.
type OrderCreated struct {
	OrderID      kernel.UUID
	CustomerName string
	OrderType    string
	Timestamp    time.Time
}

func (e OrderCreated) Kind() string          { return "order.created" }
func (e OrderCreated) OccurredAt() time.Time { return e.Timestamp }

// CoffeeReady is published when the baristas finish an order. Downstream it
// drives customer notification and, for delivery orders, the batching
// trigger.
type CoffeeReady struct {
	OrderID      kernel.UUID
	CustomerName string
	OrderType    string
	Timestamp    time.Time
}

func (e CoffeeReady) Kind() string          { return "order.coffee_ready" }
func (e CoffeeReady) OccurredAt() time.Time { return e.Timestamp }

// DeliveryCreated is published when the batching engine forms a new
// delivery run.
type DeliveryCreated struct {
	DeliveryID kernel.UUID
	OrderIDs   []kernel.UUID
	Timestamp  time.Time
}

func (e DeliveryCreated) Kind() string          { return "delivery.created" }
func (e DeliveryCreated) OccurredAt() time.Time { return e.Timestamp }

// DeliveryAssigned is published when a rider takes a delivery run.
type DeliveryAssigned struct {
	DeliveryID kernel.UUID
	RiderID    string
	RiderName  string
	Timestamp  time.Time
}

func (e DeliveryAssigned) Kind() string          { return "delivery.assigned" }
func (e DeliveryAssigned) OccurredAt() time.Time { return e.Timestamp }

// DeliveryPickedUp is published when the rider collects the orders.
type DeliveryPickedUp struct {
	DeliveryID kernel.UUID
	Timestamp  time.Time
}

func (e DeliveryPickedUp) Kind() string          { return "delivery.picked_up" }
func (e DeliveryPickedUp) OccurredAt() time.Time { return e.Timestamp }

// DeliveryDelivered is published when every order reaches its destination.
type DeliveryDelivered struct {
	DeliveryID kernel.UUID
	Timestamp  time.Time
}

func (e DeliveryDelivered) Kind() string          { return "delivery.delivered" }
func (e DeliveryDelivered) OccurredAt() time.Time { return e.Timestamp }

// DeliveryCompleted is published when a delivery run closes out.
type DeliveryCompleted struct {
	DeliveryID kernel.UUID
	Timestamp  time.Time
}

func (e DeliveryCompleted) Kind() string          { return "delivery.completed" }
func (e DeliveryCompleted) OccurredAt() time.Time { return e.Timestamp }
