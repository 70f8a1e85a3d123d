package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetMyDeliveryPersonQueryIsNotConstructed = errors.New(
		"GetMyDeliveryPersonQuery must be created via NewGetMyDeliveryPersonQuery constructor",
	)
)

// GetMyDeliveryPersonQuery returns the profile owned by the calling delivery person.
type GetMyDeliveryPersonQuery struct {
	actor actor.Actor

	guard guard.ConstructorGuard
}

// NewGetMyDeliveryPersonQuery creates the query.
func NewGetMyDeliveryPersonQuery(a actor.Actor) (GetMyDeliveryPersonQuery, error) {
	if err := a.Validate(); err != nil {
		return GetMyDeliveryPersonQuery{}, err
	}

	return GetMyDeliveryPersonQuery{actor: a, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetMyDeliveryPersonQuery) Validate() error {
	return q.guard.Validate(ErrGetMyDeliveryPersonQueryIsNotConstructed)
}

func (q GetMyDeliveryPersonQuery) Actor() actor.Actor {
	return q.actor
}

// GetMyDeliveryPersonQueryHandler looks a profile up by its owner.
type GetMyDeliveryPersonQueryHandler struct {
	persons PersonReader
}

// NewGetMyDeliveryPersonQueryHandler creates the handler.
func NewGetMyDeliveryPersonQueryHandler(persons PersonReader) GetMyDeliveryPersonQueryHandler {
	return GetMyDeliveryPersonQueryHandler{persons: persons}
}

// Handle returns errs.ErrPermissionDenied for non-delivery actors and
// errs.ErrObjectNotFound when no profile was registered yet.
func (h GetMyDeliveryPersonQueryHandler) Handle(
	ctx context.Context,
	query GetMyDeliveryPersonQuery,
) (*person.DeliveryPerson, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	a := query.Actor()
	if !a.IsDelivery() {
		return nil, errs.NewPermissionDeniedError(a.ID().String(), "own a delivery profile")
	}

	return h.persons.GetByUserID(ctx, a.ID())
}
