package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSetAvailabilityCommandIsNotConstructed = errors.New(
		"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
	)
)

// SetAvailabilityCommand toggles whether a delivery person takes new work.
type SetAvailabilityCommand struct { //nolint:recvcheck //using for validation
	actor     actor.Actor
	personID  kernel.UUID
	available bool

	guard guard.ConstructorGuard
}

// NewSetAvailabilityCommand creates an availability toggle command.
func NewSetAvailabilityCommand(a actor.Actor, personID kernel.UUID, available bool) (SetAvailabilityCommand, error) {
	cmd := SetAvailabilityCommand{
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setPersonID(personID),
	); err != nil {
		return SetAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}

func (c SetAvailabilityCommand) Actor() actor.Actor {
	return c.actor
}

func (c SetAvailabilityCommand) PersonID() kernel.UUID {
	return c.personID
}

func (c SetAvailabilityCommand) Available() bool {
	return c.available
}

func (c *SetAvailabilityCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}

func (c *SetAvailabilityCommand) setPersonID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.personID = id
	return nil
}
