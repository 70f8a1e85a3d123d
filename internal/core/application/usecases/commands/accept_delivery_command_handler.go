package commands

import (
	"context"

	"marketplace/internal/core/domain/model/request"
)

type transitionHandler interface {
	Handle(ctx context.Context, cmd ApplyTransitionCommand) (*request.DeliveryRequest, error)
}

// AcceptDeliveryCommandHandler assigns a pending request to the accepting
// delivery person. It is a transition to accepted and shares its rules,
// retries and events.
//
// Example:
//
//	transitions := NewApplyTransitionCommandHandler(uowFactory, publisher, logger)
//	handler := NewAcceptDeliveryCommandHandler(&transitions)
//
//	accepted, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrAlreadyAssigned) {
//	    // somebody else was faster
//	}
type AcceptDeliveryCommandHandler struct {
	transitions transitionHandler
}

// NewAcceptDeliveryCommandHandler creates a handler on top of the transition handler.
func NewAcceptDeliveryCommandHandler(transitions transitionHandler) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{transitions: transitions}
}

// Handle accepts the request and returns it with the new assignment.
func (h *AcceptDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd AcceptDeliveryCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	transition, err := NewApplyTransitionCommand(cmd.DeliveryPerson(), cmd.RequestID(), request.StatusAccepted)
	if err != nil {
		return nil, err
	}

	return h.transitions.Handle(ctx, transition)
}
