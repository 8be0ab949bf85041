package commands

import (
	"errors"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/guard"
)

var ErrAssignRiderCommandIsNotConstructed = errors.New(
	"AssignRiderCommand must be created via NewAssignRiderCommand constructor",
)

// AssignRiderCommand represents a request to assign a rider to a delivery
// run. The rider details are validated into a RiderInfo value object at
// construction, so a constructed command always carries a valid rider.
type AssignRiderCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	riderInfo  delivery.RiderInfo

	guard guard.ConstructorGuard
}

// NewAssignRiderCommand creates a command to assign a rider. An empty
// vehicle type falls back to the default.
func NewAssignRiderCommand(
	deliveryID kernel.UUID,
	riderID, riderName, phoneNumber, vehicleType string,
) (AssignRiderCommand, error) {
	if err := deliveryID.Validate(); err != nil {
		return AssignRiderCommand{}, err
	}

	riderInfo, err := delivery.NewRiderInfo(riderID, riderName, phoneNumber, vehicleType)
	if err != nil {
		return AssignRiderCommand{}, err
	}

	return AssignRiderCommand{
		deliveryID: deliveryID,
		riderInfo:  riderInfo,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignRiderCommand) Validate() error {
	return c.guard.Validate(ErrAssignRiderCommandIsNotConstructed)
}

// DeliveryID returns the identifier of the delivery run to assign.
func (c AssignRiderCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// RiderInfo returns the validated rider details.
func (c AssignRiderCommand) RiderInfo() delivery.RiderInfo {
	return c.riderInfo
}
