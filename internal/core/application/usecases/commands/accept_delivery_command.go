package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
		"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
	)
)

// AcceptDeliveryCommand represents a delivery person taking a pending request
// from the available pool.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryPerson actor.Actor
	requestID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates an accept command for the given delivery actor.
func NewAcceptDeliveryCommand(deliveryPerson actor.Actor, requestID kernel.UUID) (AcceptDeliveryCommand, error) {
	cmd := AcceptDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setDeliveryPerson(deliveryPerson),
		cmd.setRequestID(requestID),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

func (c AcceptDeliveryCommand) DeliveryPerson() actor.Actor {
	return c.deliveryPerson
}

func (c AcceptDeliveryCommand) RequestID() kernel.UUID {
	return c.requestID
}

func (c *AcceptDeliveryCommand) setDeliveryPerson(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.deliveryPerson = a
	return nil
}

func (c *AcceptDeliveryCommand) setRequestID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.requestID = id
	return nil
}
