package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetDeliveryRequestQueryIsNotConstructed = errors.New(
		"GetDeliveryRequestQuery must be created via NewGetDeliveryRequestQuery constructor",
	)
)

// GetDeliveryRequestQuery reads a single request on behalf of an actor.
type GetDeliveryRequestQuery struct { //nolint:recvcheck //using for validation
	actor     actor.Actor
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDeliveryRequestQuery creates the query.
func NewGetDeliveryRequestQuery(a actor.Actor, requestID kernel.UUID) (GetDeliveryRequestQuery, error) {
	if err := errors.Join(a.Validate(), requestID.Validate()); err != nil {
		return GetDeliveryRequestQuery{}, err
	}

	return GetDeliveryRequestQuery{
		actor:     a,
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryRequestQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryRequestQueryIsNotConstructed)
}

func (q GetDeliveryRequestQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetDeliveryRequestQuery) RequestID() kernel.UUID {
	return q.requestID
}
