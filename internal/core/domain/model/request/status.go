package request

import (
	"fmt"
	"strings"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery request.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InTransit ──> Delivered
//	   │           │
//	   └───────────┴──> Cancelled
//
// Delivered and Cancelled are terminal: no transition leaves them.
type Status int

const (
	// StatusUnknown is the zero value and catches uninitialized statuses.
	StatusUnknown Status = iota

	// StatusPending is the initial status; the request sits in the available pool.
	StatusPending

	// StatusAccepted means a delivery person claimed the request.
	StatusAccepted

	// StatusPickedUp means the parcel was collected at the pickup endpoint.
	StatusPickedUp

	// StatusInTransit means the parcel is on its way to the dropoff endpoint.
	StatusInTransit

	// StatusDelivered is terminal.
	StatusDelivered

	// StatusCancelled is terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAccepted:  "accepted",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
	}
}

// getTransitionTable lists every allowed (from, to) pair regardless of actor.
// Who may perform a given move is decided by services.LifecycleEngine.
func getTransitionTable() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing transitions
	return map[Status][]Status{
		StatusPending:   {StatusAccepted, StatusCancelled},
		StatusAccepted:  {StatusPickedUp, StatusCancelled},
		StatusPickedUp:  {StatusInTransit},
		StatusInTransit: {StatusDelivered},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusAccepted,
		StatusPickedUp,
		StatusInTransit,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseStatus converts the wire name of a status (e.g. "picked_up") to a Status.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, status := range AllStatuses() {
		if status.String() == normalized {
			return status, nil
		}
	}

	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate checks if the Status value is one of the six lifecycle states.
func (s Status) Validate() error {
	if s < StatusPending || s > StatusCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether a delivery person is currently working the request.
func (s Status) IsActive() bool {
	return s == StatusAccepted || s == StatusPickedUp || s == StatusInTransit
}

// RequiresDeliveryPerson reports whether a request in this status must have an assignee.
func (s Status) RequiresDeliveryPerson() bool {
	return s.IsActive() || s == StatusDelivered
}

// CanTransitionTo reports whether (s, target) is in the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitionTable()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateCanHaveDeliveryPerson checks the consistency between status and assignment:
// accepted, picked_up, in_transit and delivered requests must have a delivery
// person, pending and cancelled requests must not.
func (s Status) ValidateCanHaveDeliveryPerson(assigned bool) error {
	if assigned && !s.RequiresDeliveryPerson() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a delivery person", s),
		)
	}

	if !assigned && s.RequiresDeliveryPerson() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery person", s),
		)
	}

	return nil
}

// TransitionTo returns target if (s, target) is an allowed move.
//
// Returns:
//   - (target, nil) on a valid transition
//   - (StatusUnknown, *errs.InvalidTransitionError) otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
