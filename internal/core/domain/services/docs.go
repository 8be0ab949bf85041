// Package services contains stateless domain services: the pricing
// strategies selected per order type and the DeliveryBatchEngine, which
// partitions ready delivery orders into delivery runs under address,
// time-window, and capacity constraints.
package services
