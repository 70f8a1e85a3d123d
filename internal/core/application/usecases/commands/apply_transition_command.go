package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/guard"
)

var (
	ErrApplyTransitionCommandIsNotConstructed = errors.New(
		"ApplyTransitionCommand must be created via NewApplyTransitionCommand constructor",
	)
)

// ApplyTransitionCommand asks to move a delivery request to a target status on
// behalf of an actor. The target is not checked here: an unknown status is an
// invalid transition, decided by the lifecycle rules.
type ApplyTransitionCommand struct { //nolint:recvcheck //using for validation
	actor     actor.Actor
	requestID kernel.UUID
	target    request.Status

	guard guard.ConstructorGuard
}

// NewApplyTransitionCommand creates a transition command.
func NewApplyTransitionCommand(
	a actor.Actor,
	requestID kernel.UUID,
	target request.Status,
) (ApplyTransitionCommand, error) {
	cmd := ApplyTransitionCommand{
		target: target,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setRequestID(requestID),
	); err != nil {
		return ApplyTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyTransitionCommand) Validate() error {
	return c.guard.Validate(ErrApplyTransitionCommandIsNotConstructed)
}

func (c ApplyTransitionCommand) Actor() actor.Actor {
	return c.actor
}

func (c ApplyTransitionCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c ApplyTransitionCommand) Target() request.Status {
	return c.target
}

func (c *ApplyTransitionCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}

func (c *ApplyTransitionCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.requestID = id
	return nil
}
