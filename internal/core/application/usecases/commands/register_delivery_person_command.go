package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/pkg/guard"
)

var (
	ErrRegisterDeliveryPersonCommandIsNotConstructed = errors.New(
		"RegisterDeliveryPersonCommand must be created via NewRegisterDeliveryPersonCommand constructor",
	)
)

// RegisterDeliveryPersonCommand creates the delivery profile of a delivery-role user.
type RegisterDeliveryPersonCommand struct { //nolint:recvcheck //using for validation
	owner        actor.Actor
	vehicle      person.VehicleType
	licensePlate string

	guard guard.ConstructorGuard
}

// NewRegisterDeliveryPersonCommand creates a registration command.
// The license plate is optional.
func NewRegisterDeliveryPersonCommand(
	owner actor.Actor,
	vehicle person.VehicleType,
	licensePlate string,
) (RegisterDeliveryPersonCommand, error) {
	cmd := RegisterDeliveryPersonCommand{
		licensePlate: strings.TrimSpace(licensePlate),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setVehicle(vehicle),
	); err != nil {
		return RegisterDeliveryPersonCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDeliveryPersonCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDeliveryPersonCommandIsNotConstructed)
}

func (c RegisterDeliveryPersonCommand) Owner() actor.Actor {
	return c.owner
}

func (c RegisterDeliveryPersonCommand) Vehicle() person.VehicleType {
	return c.vehicle
}

func (c RegisterDeliveryPersonCommand) LicensePlate() string {
	return c.licensePlate
}

func (c *RegisterDeliveryPersonCommand) setOwner(owner actor.Actor) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	c.owner = owner
	return nil
}

func (c *RegisterDeliveryPersonCommand) setVehicle(vehicle person.VehicleType) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}
