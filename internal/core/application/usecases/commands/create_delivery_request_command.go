package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/guard"
)

var (
	ErrCreateDeliveryRequestCommandIsNotConstructed = errors.New(
		"CreateDeliveryRequestCommand must be created via NewCreateDeliveryRequestCommand constructor",
	)
)

// CreateDeliveryRequestCommand represents an end user asking for a parcel to be
// moved from pickup to dropoff at a fixed price.
//
// Example:
//
//	cmd, err := NewCreateDeliveryRequestCommand(creator, pickup, dropoff, parcel, 8.50, 25)
//	if err != nil {
//	    return fmt.Errorf("invalid delivery request: %w", err)
//	}
//
//	created, err := handler.Handle(ctx, cmd)
type CreateDeliveryRequestCommand struct { //nolint:recvcheck //using for validation
	creator          actor.Actor
	pickup           request.Endpoint
	dropoff          request.Endpoint
	parcel           request.Parcel
	price            float64
	estimatedMinutes int

	guard guard.ConstructorGuard
}

// NewCreateDeliveryRequestCommand creates a command to publish a new delivery request.
// Price and estimated time are checked by the aggregate itself.
func NewCreateDeliveryRequestCommand(
	creator actor.Actor,
	pickup request.Endpoint,
	dropoff request.Endpoint,
	parcel request.Parcel,
	price float64,
	estimatedMinutes int,
) (CreateDeliveryRequestCommand, error) {
	cmd := CreateDeliveryRequestCommand{
		price:            price,
		estimatedMinutes: estimatedMinutes,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCreator(creator),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setParcel(parcel),
	); err != nil {
		return CreateDeliveryRequestCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryRequestCommandIsNotConstructed)
}

// Creator returns the actor publishing the request.
func (c CreateDeliveryRequestCommand) Creator() actor.Actor {
	return c.creator
}

func (c CreateDeliveryRequestCommand) Pickup() request.Endpoint {
	return c.pickup
}

func (c CreateDeliveryRequestCommand) Dropoff() request.Endpoint {
	return c.dropoff
}

func (c CreateDeliveryRequestCommand) Parcel() request.Parcel {
	return c.parcel
}

func (c CreateDeliveryRequestCommand) Price() float64 {
	return c.price
}

// EstimatedMinutes returns the optional delivery estimate, 0 when unknown.
func (c CreateDeliveryRequestCommand) EstimatedMinutes() int {
	return c.estimatedMinutes
}

func (c *CreateDeliveryRequestCommand) setCreator(creator actor.Actor) error {
	if err := creator.Validate(); err != nil {
		return err
	}

	c.creator = creator
	return nil
}

func (c *CreateDeliveryRequestCommand) setPickup(pickup request.Endpoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}

	c.pickup = pickup
	return nil
}

func (c *CreateDeliveryRequestCommand) setDropoff(dropoff request.Endpoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}

	c.dropoff = dropoff
	return nil
}

func (c *CreateDeliveryRequestCommand) setParcel(parcel request.Parcel) error {
	if err := parcel.Validate(); err != nil {
		return err
	}

	c.parcel = parcel
	return nil
}
