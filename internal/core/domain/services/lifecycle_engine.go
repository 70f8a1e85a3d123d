package services

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/errs"
)

// LifecycleEngine is a domain service deciding whether an actor may move a
// delivery request to a target status, and applying the move when allowed.
//
// The request aggregate knows which (from, to) pairs exist; the engine adds
// who may trigger each of them:
//
//	| Actor               | From              | To         |
//	|---------------------|-------------------|------------|
//	| delivery            | pending           | accepted   |
//	| delivery (assignee) | accepted          | picked_up  |
//	| delivery (assignee) | picked_up         | in_transit |
//	| delivery (assignee) | in_transit        | delivered  |
//	| creator or admin    | pending, accepted | cancelled  |
//
// Checks run in a fixed order so every caller gets the same error for the
// same situation:
//  1. unknown target                               -> InvalidTransition
//  2. current status is terminal                   -> InvalidTransition
//  3. role can never reach target                  -> PermissionDenied
//  4. accepting an already assigned request        -> AlreadyAssigned
//  5. (current, target) not in the table           -> InvalidTransition
//  6. actor is not the assignee / not the creator  -> PermissionDenied
//
// A failed Apply leaves the request untouched.
type LifecycleEngine struct{}

// NewLifecycleEngine creates a new LifecycleEngine instance.
func NewLifecycleEngine() LifecycleEngine {
	return LifecycleEngine{}
}

// Apply validates and performs the transition of r to target on behalf of a.
//
// Parameters:
//   - r: the loaded request (must be valid)
//   - a: the acting identity (must be valid)
//   - target: the requested next status
//   - at: the instant recorded as updatedAt
//
// Returns:
//   - nil on success; r then carries the new status and a recorded event
//   - *errs.InvalidTransitionError, *errs.PermissionDeniedError or *errs.AlreadyAssignedError
func (e LifecycleEngine) Apply(r *request.DeliveryRequest, a actor.Actor, target request.Status, at time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return err
	}

	current := r.Status()
	if err := target.Validate(); err != nil {
		return errs.NewInvalidTransitionErrorWithCause(current.String(), target.String(), err)
	}

	if current.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(
			current.String(), target.String(),
			fmt.Errorf("%s is terminal", current),
		)
	}

	if !e.CanRoleReach(a.Role(), target) {
		return errs.NewPermissionDeniedError(a.ID().String(), "move a request to "+target.String())
	}

	if target == request.StatusAccepted && r.IsAssigned() {
		return errs.NewAlreadyAssignedError(r.ID().String(), r.DeliveryPersonID().String())
	}

	if !current.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError(current.String(), target.String())
	}

	if err := e.checkIdentity(r, a, target); err != nil {
		return err
	}

	//nolint:exhaustive // every other target was rejected above
	switch target {
	case request.StatusAccepted:
		return r.Accept(a.ID(), at)
	case request.StatusPickedUp:
		return r.PickUp(at)
	case request.StatusInTransit:
		return r.StartTransit(at)
	case request.StatusDelivered:
		return r.Deliver(at)
	case request.StatusCancelled:
		return r.Cancel(at)
	default:
		return errs.NewInvalidTransitionError(current.String(), target.String())
	}
}

// CanRoleReach reports whether a role is ever allowed to move a request to target.
func (e LifecycleEngine) CanRoleReach(role actor.Role, target request.Status) bool {
	//nolint:exhaustive // unknown role reaches nothing
	switch role {
	case actor.RoleDelivery:
		return target == request.StatusAccepted ||
			target == request.StatusPickedUp ||
			target == request.StatusInTransit ||
			target == request.StatusDelivered
	case actor.RoleUser, actor.RoleAdmin:
		return target == request.StatusCancelled
	default:
		return false
	}
}

// AllowedTargets lists the statuses a may move r to right now. Used to tell
// clients which actions to offer.
func (e LifecycleEngine) AllowedTargets(r *request.DeliveryRequest, a actor.Actor) []request.Status {
	out := make([]request.Status, 0, 2)
	if r.Validate() != nil || a.Validate() != nil || r.Status().IsTerminal() {
		return out
	}

	for _, target := range request.AllStatuses() {
		if !e.CanRoleReach(a.Role(), target) || !r.Status().CanTransitionTo(target) {
			continue
		}
		if target == request.StatusAccepted && r.IsAssigned() {
			continue
		}
		if e.checkIdentity(r, a, target) != nil {
			continue
		}
		out = append(out, target)
	}
	return out
}

func (e LifecycleEngine) checkIdentity(r *request.DeliveryRequest, a actor.Actor, target request.Status) error {
	//nolint:exhaustive // only identity-bound targets are listed
	switch target {
	case request.StatusPickedUp, request.StatusInTransit, request.StatusDelivered:
		if !r.IsAssignedTo(a.ID()) {
			return errs.NewPermissionDeniedError(a.ID().String(), "advance a request assigned to someone else")
		}
	case request.StatusCancelled:
		if a.IsUser() && !r.IsCreatedBy(a.ID()) {
			return errs.NewPermissionDeniedError(a.ID().String(), "cancel a request created by someone else")
		}
	}
	return nil
}
