package commands

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// AssignRiderCommandHandler assigns a rider to a delivery run and publishes
// the delivery-assigned event.
type AssignRiderCommandHandler struct {
	deliveries ports.DeliveryRepository
	publisher  ports.EventPublisher
}

// NewAssignRiderCommandHandler creates a handler for rider assignment.
func NewAssignRiderCommandHandler(
	deliveries ports.DeliveryRepository,
	publisher ports.EventPublisher,
) (AssignRiderCommandHandler, error) {
	if deliveries == nil {
		return AssignRiderCommandHandler{}, errs.NewValueIsRequiredError("deliveries repository")
	}
	if publisher == nil {
		return AssignRiderCommandHandler{}, errs.NewValueIsRequiredError("event publisher")
	}

	return AssignRiderCommandHandler{
		deliveries: deliveries,
		publisher:  publisher,
	}, nil
}

// Handle processes the rider assignment command.
func (h *AssignRiderCommandHandler) Handle(ctx context.Context, cmd AssignRiderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := h.deliveries.FindByID(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if err := d.AssignRider(cmd.RiderInfo()); err != nil {
		return err
	}

	if err := h.deliveries.Save(ctx, d); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.DeliveryAssigned{
		DeliveryID: d.ID(),
		RiderID:    cmd.RiderInfo().RiderID(),
		RiderName:  cmd.RiderInfo().RiderName(),
		Timestamp:  time.Now().UTC(),
	})

	return nil
}
