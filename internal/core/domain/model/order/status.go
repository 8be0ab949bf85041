package order

import (
	"fmt"

	"coffeeshop/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. The happy path is a
// strict line; cancellation branches off everywhere except the end:
//
//	Created ──> Settled ──> Preparing ──> Ready ──> Completed
//	   │           │            │           │
//	   └───────────┴────────────┴───────────┴──> Cancelled
//
// Transitions are performed through the methods below, each of which
// returns the next status or an InvalidStateTransitionError carrying the
// current and target states. A failed transition computes nothing else,
// so callers can rely on their aggregate being untouched.
type Status int

const (
	// Unknown is the invalid zero value, used to catch uninitialized statuses.
	Unknown Status = iota

	// Created is the initial status: the order exists but has no price yet.
	Created

	// Settled means the total price has been computed and locked in.
	Settled

	// Preparing means the baristas are working on the order.
	Preparing

	// Ready means the order is finished and waiting for pickup or batching.
	Ready

	// Completed is the successful terminal status.
	Completed

	// Cancelled is the unsuccessful terminal status, reachable from any
	// state except Completed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Created:   "CREATED",
		Settled:   "SETTLED",
		Preparing: "PREPARING",
		Ready:     "READY",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "CREATED",
		Settled:   "SETTLED",
		Preparing: "PREPARING",
		Ready:     "READY",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// Validate checks that the Status is one of the declared lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%d is not a valid order status", s))
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
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status",
		fmt.Errorf("%q is not a valid order status", str))
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Settle transitions Created -> Settled.
func (s Status) Settle() (Status, error) {
	if s != Created {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Settled.String())
	}
	return Settled, nil
}

// StartPreparing transitions Settled -> Preparing.
func (s Status) StartPreparing() (Status, error) {
	if s != Settled {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Preparing.String())
	}
	return Preparing, nil
}

// MarkAsReady transitions Preparing -> Ready.
func (s Status) MarkAsReady() (Status, error) {
	if s != Preparing {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Ready.String())
	}
	return Ready, nil
}

// Complete transitions Ready -> Completed.
func (s Status) Complete() (Status, error) {
	if s != Ready {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Completed.String())
	}
	return Completed, nil
}

// Cancel transitions any non-Completed status -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s == Completed {
		return Unknown, errs.NewInvalidStateTransitionError(s.String(), Cancelled.String())
	}
	return Cancelled, nil
}
