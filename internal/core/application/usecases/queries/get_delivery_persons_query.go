package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetDeliveryPersonsQueryIsNotConstructed = errors.New(
		"GetDeliveryPersonsQuery must be created via NewGetDeliveryPersonsQuery constructor",
	)
)

// GetDeliveryPersonsQuery lists delivery profiles. Only admins see any.
type GetDeliveryPersonsQuery struct { //nolint:recvcheck //using for validation
	actor         actor.Actor
	availableOnly bool

	guard guard.ConstructorGuard
}

// NewGetDeliveryPersonsQuery creates the query.
func NewGetDeliveryPersonsQuery(a actor.Actor, availableOnly bool) (GetDeliveryPersonsQuery, error) {
	if err := a.Validate(); err != nil {
		return GetDeliveryPersonsQuery{}, err
	}

	return GetDeliveryPersonsQuery{
		actor:         a,
		availableOnly: availableOnly,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryPersonsQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryPersonsQueryIsNotConstructed)
}

func (q GetDeliveryPersonsQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetDeliveryPersonsQuery) AvailableOnly() bool {
	return q.availableOnly
}
