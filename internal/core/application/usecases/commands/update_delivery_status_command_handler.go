package commands

import (
	"context"
	"time"

	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"
)

// ErrAssignmentNotDispatchable is returned when a status update requests
// the Assigned status. Assignment carries rider details and must go through
// AssignRiderCommand.
var ErrAssignmentNotDispatchable = errs.NewValueIsInvalidError(
	"rider assignment cannot be requested as a status update")

// UpdateDeliveryStatusCommandHandler maps a target status onto the
// delivery's named transition, persists the result, and publishes the
// matching lifecycle event.
type UpdateDeliveryStatusCommandHandler struct {
	deliveries ports.DeliveryRepository
	publisher  ports.EventPublisher
}

// NewUpdateDeliveryStatusCommandHandler creates the delivery status dispatcher.
func NewUpdateDeliveryStatusCommandHandler(
	deliveries ports.DeliveryRepository,
	publisher ports.EventPublisher,
) (UpdateDeliveryStatusCommandHandler, error) {
	if deliveries == nil {
		return UpdateDeliveryStatusCommandHandler{}, errs.NewValueIsRequiredError("deliveries repository")
	}
	if publisher == nil {
		return UpdateDeliveryStatusCommandHandler{}, errs.NewValueIsRequiredError("event publisher")
	}

	return UpdateDeliveryStatusCommandHandler{
		deliveries: deliveries,
		publisher:  publisher,
	}, nil
}

// Handle dispatches the requested status to the matching transition.
func (h *UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	d, err := h.deliveries.FindByID(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	var event events.Event
	now := time.Now().UTC()

	switch cmd.Target() {
	case delivery.StatusAssigned:
		return ErrAssignmentNotDispatchable
	case delivery.StatusPickedUp:
		if err := d.MarkAsPickedUp(); err != nil {
			return err
		}
		event = events.DeliveryPickedUp{DeliveryID: d.ID(), Timestamp: now}
	case delivery.StatusInTransit:
		if err := d.MarkAsInTransit(); err != nil {
			return err
		}
	case delivery.StatusDelivered:
		if err := d.MarkAsDelivered(); err != nil {
			return err
		}
		event = events.DeliveryDelivered{DeliveryID: d.ID(), Timestamp: now}
	case delivery.StatusCompleted:
		if err := d.Complete(); err != nil {
			return err
		}
		event = events.DeliveryCompleted{DeliveryID: d.ID(), Timestamp: now}
	case delivery.StatusCancelled:
		if err := d.Cancel(); err != nil {
			return err
		}
	case delivery.StatusUnknown, delivery.StatusCreated:
		fallthrough
	default:
		return errs.NewValueIsInvalidError("target status")
	}

	if err := h.deliveries.Save(ctx, d); err != nil {
		return err
	}

	if event != nil {
		h.publisher.Publish(ctx, event)
	}

	return nil
}
