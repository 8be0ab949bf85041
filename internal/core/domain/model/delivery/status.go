package delivery

import (
	"fmt"

	"coffeeshop/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery run:
//
//	Created ──> Assigned ──> PickedUp ──> InTransit ──> Delivered ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
//
// Cancellation is only possible before the rider physically picks up the
// orders. Transition methods return the next status or an
// InvalidStateTransitionError; they never mutate anything themselves.
type Status int

const (
	// StatusUnknown is the invalid zero value.
	StatusUnknown Status = iota

	// StatusCreated is the initial status: the batch exists, no rider yet.
	StatusCreated

	// StatusAssigned means a rider has been assigned to the run.
	StatusAssigned

	// StatusPickedUp means the rider has collected every order.
	StatusPickedUp

	// StatusInTransit means the rider is on the way.
	StatusInTransit

	// StatusDelivered means every order reached its destination.
	StatusDelivered

	// StatusCompleted is the successful terminal status.
	StatusCompleted

	// StatusCancelled is the unsuccessful terminal status, reachable only
	// from Created or Assigned.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusCreated:   "CREATED",
		StatusAssigned:  "ASSIGNED",
		StatusPickedUp:  "PICKED_UP",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCompleted: "COMPLETED",
		StatusCancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusCreated:   "CREATED",
		StatusAssigned:  "ASSIGNED",
		StatusPickedUp:  "PICKED_UP",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCompleted: "COMPLETED",
		StatusCancelled: "CANCELLED",
	}
}

// Validate checks that the Status is one of the declared lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a wire name back into a Status.
func StatusFromString(str string) (Status, error) {
	for s, name := range getValidStatusStrings() {
		if name == str {
			return s, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("delivery status",
		fmt.Errorf("%q is not a valid delivery status", str))
}

// IsActive reports whether the delivery run is currently underway.
func (s Status) IsActive() bool {
	return s == StatusAssigned || s == StatusPickedUp || s == StatusInTransit
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Assign transitions Created -> Assigned.
func (s Status) Assign() (Status, error) {
	if s != StatusCreated {
		return StatusUnknown, errs.NewInvalidStateTransitionError(s.String(), StatusAssigned.String())
	}
	return StatusAssigned, nil
}

// PickUp transitions Assigned -> PickedUp.
func (s Status) PickUp() (Status, error) {
	if s != StatusAssigned {
		return StatusUnknown, errs.NewInvalidStateTransitionError(s.String(), StatusPickedUp.String())
	}
	return StatusPickedUp, nil
}

// StartTransit transitions PickedUp -> InTransit.
func (s Status) StartTransit() (Status, error) {
	if s != StatusPickedUp {
		return StatusUnknown, errs.NewInvalidStateTransitionError(s.String(), StatusInTransit.String())
	}
	return StatusInTransit, nil
}

// Deliver transitions InTransit -> Delivered.
func (s Status) Deliver() (Status, error) {
	if s != StatusInTransit {
		return StatusUnknown, errs.NewInvalidStateTransitionError(s.String(), StatusDelivered.String())
	}
	return StatusDelivered, nil
}

// Complete transitions Delivered -> Completed.
func (s Status) Complete() (Status, error) {
	if s != StatusDelivered {
		return StatusUnknown, errs.NewInvalidStateTransitionError(s.String(), StatusCompleted.String())
	}
	return StatusCompleted, nil
}

// Cancel transitions Created or Assigned -> Cancelled. A run that has been
// physically picked up can no longer be cancelled.
func (s Status) Cancel() (Status, error) {
	if s != StatusCreated && s != StatusAssigned {
		return StatusUnknown, errs.NewInvalidStateTransitionError(s.String(), StatusCancelled.String())
	}
	return StatusCancelled, nil
}
