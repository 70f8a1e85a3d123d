package request

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

// EventKind names a semantic lifecycle event. The values are the wire names
// used by every notification transport.
type EventKind string

const (
	EventNewDelivery       EventKind = "new_delivery"
	EventDeliveryAccepted  EventKind = "delivery_accepted"
	EventDeliveryPickedUp  EventKind = "delivery_picked_up"
	EventDeliveryInTransit EventKind = "delivery_in_transit"
	EventDeliveryCompleted EventKind = "delivery_completed"
	EventDeliveryCancelled EventKind = "delivery_cancelled"
)

// EventKindFor returns the event emitted when a request enters status s.
func EventKindFor(s Status) (EventKind, bool) {
	//nolint:exhaustive // unknown has no event
	switch s {
	case StatusPending:
		return EventNewDelivery, true
	case StatusAccepted:
		return EventDeliveryAccepted, true
	case StatusPickedUp:
		return EventDeliveryPickedUp, true
	case StatusInTransit:
		return EventDeliveryInTransit, true
	case StatusDelivered:
		return EventDeliveryCompleted, true
	case StatusCancelled:
		return EventDeliveryCancelled, true
	default:
		return "", false
	}
}

// Event is recorded by the DeliveryRequest aggregate on creation and on every
// successful transition, then published after the unit of work commits.
//
// DeliveryPersonID is the delivery person involved in the event. For a
// cancellation of an accepted request it is the person who held the request
// before the assignment was cleared, so their stream still learns about it.
type Event struct {
	Kind             EventKind    `json:"type"`
	RequestID        kernel.UUID  `json:"request_id"`
	UserID           kernel.UUID  `json:"user_id"`
	DeliveryPersonID *kernel.UUID `json:"delivery_person_id,omitempty"`
	Status           string       `json:"status"`
	Price            float64      `json:"price"`
	OccurredAt       time.Time    `json:"occurred_at"`
}
