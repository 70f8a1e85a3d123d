package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrUpdateLocationCommandIsNotConstructed = errors.New(
		"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
	)
)

// UpdateLocationCommand carries a position reported by the geolocation provider.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	actor    actor.Actor
	personID kernel.UUID
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a location update command.
func NewUpdateLocationCommand(
	a actor.Actor,
	personID kernel.UUID,
	location kernel.Location,
) (UpdateLocationCommand, error) {
	cmd := UpdateLocationCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(a),
		cmd.setPersonID(personID),
		cmd.setLocation(location),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) Actor() actor.Actor {
	return c.actor
}

func (c UpdateLocationCommand) PersonID() kernel.UUID {
	return c.personID
}

func (c UpdateLocationCommand) Location() kernel.Location {
	return c.location
}

func (c *UpdateLocationCommand) setActor(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}

	c.actor = a
	return nil
}

func (c *UpdateLocationCommand) setPersonID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.personID = id
	return nil
}

func (c *UpdateLocationCommand) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
