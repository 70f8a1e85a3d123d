package services

import (
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"
)

// VisibilityFilter derives what an actor may see. It is a pure function of its
// inputs and keeps no state, so results are recomputed on every query.
//
// Rules:
//   - admin sees every request and every delivery person
//   - user sees the requests it created and no delivery persons
//   - delivery sees the available pool (pending, unassigned) plus its own
//     assigned requests that are not delivered or cancelled, and no other
//     delivery persons
type VisibilityFilter struct{}

// NewVisibilityFilter creates a new VisibilityFilter instance.
func NewVisibilityFilter() VisibilityFilter {
	return VisibilityFilter{}
}

// VisibleRequests returns the subset of all visible to a, preserving order.
// An unconstructed actor sees nothing.
func (f VisibilityFilter) VisibleRequests(a actor.Actor, all []*request.DeliveryRequest) []*request.DeliveryRequest {
	out := make([]*request.DeliveryRequest, 0, len(all))
	if a.Validate() != nil {
		return out
	}

	for _, r := range all {
		if r.Validate() != nil {
			continue
		}
		if f.isListed(a, r) {
			out = append(out, r)
		}
	}
	return out
}

// VisiblePersons returns the delivery persons visible to a. Only admins see any.
func (f VisibilityFilter) VisiblePersons(a actor.Actor, all []*person.DeliveryPerson) []*person.DeliveryPerson {
	if a.Validate() != nil || !a.IsAdmin() {
		return []*person.DeliveryPerson{}
	}

	out := make([]*person.DeliveryPerson, len(all))
	copy(out, all)
	return out
}

// CanView reports whether a may open a single request. This is wider than the
// list rule for delivery persons: the assignee can still open a request after it
// was delivered, e.g. to review its history.
func (f VisibilityFilter) CanView(a actor.Actor, r *request.DeliveryRequest) bool {
	if a.Validate() != nil || r.Validate() != nil {
		return false
	}

	//nolint:exhaustive // unknown role sees nothing
	switch a.Role() {
	case actor.RoleAdmin:
		return true
	case actor.RoleUser:
		return r.IsCreatedBy(a.ID())
	case actor.RoleDelivery:
		return r.IsInAvailablePool() || r.IsAssignedTo(a.ID())
	default:
		return false
	}
}

// CanReceive reports whether a pushed event belongs on a's stream.
//
// Delivery persons get pool changes they can act on (new requests and
// cancellations of unassigned ones) and every event naming them. Acceptances
// by peers are not pushed; the pool query reflects them on the next refresh.
func (f VisibilityFilter) CanReceive(a actor.Actor, e request.Event) bool {
	if a.Validate() != nil {
		return false
	}

	//nolint:exhaustive // unknown role receives nothing
	switch a.Role() {
	case actor.RoleAdmin:
		return true
	case actor.RoleUser:
		return e.UserID.IsEqual(a.ID())
	case actor.RoleDelivery:
		if e.DeliveryPersonID != nil {
			return e.DeliveryPersonID.IsEqual(a.ID())
		}
		return e.Kind == request.EventNewDelivery || e.Kind == request.EventDeliveryCancelled
	default:
		return false
	}
}

func (f VisibilityFilter) isListed(a actor.Actor, r *request.DeliveryRequest) bool {
	//nolint:exhaustive // unknown role sees nothing
	switch a.Role() {
	case actor.RoleAdmin:
		return true
	case actor.RoleUser:
		return r.IsCreatedBy(a.ID())
	case actor.RoleDelivery:
		if r.IsInAvailablePool() {
			return true
		}
		return r.IsAssignedTo(a.ID()) && !r.Status().IsTerminal()
	default:
		return false
	}
}
