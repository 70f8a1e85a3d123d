package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// DefaultNearbyRadiusKm is used when the caller does not pass a radius.
const DefaultNearbyRadiusKm = 5.0

var (
	ErrGetNearbyDeliveryPersonsQueryIsNotConstructed = errors.New(
		"GetNearbyDeliveryPersonsQuery must be created via NewGetNearbyDeliveryPersonsQuery constructor",
	)
)

// GetNearbyDeliveryPersonsQuery asks for available delivery persons around a point.
type GetNearbyDeliveryPersonsQuery struct { //nolint:recvcheck //using for validation
	actor    actor.Actor
	origin   kernel.Location
	radiusKm float64
	limit    int

	guard guard.ConstructorGuard
}

// NewGetNearbyDeliveryPersonsQuery creates the query. radiusKm <= 0 falls back
// to DefaultNearbyRadiusKm; limit <= 0 means no limit.
func NewGetNearbyDeliveryPersonsQuery(
	a actor.Actor,
	origin kernel.Location,
	radiusKm float64,
	limit int,
) (GetNearbyDeliveryPersonsQuery, error) {
	if err := errors.Join(a.Validate(), origin.Validate()); err != nil {
		return GetNearbyDeliveryPersonsQuery{}, err
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	if limit < 0 {
		return GetNearbyDeliveryPersonsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, "unbounded")
	}

	return GetNearbyDeliveryPersonsQuery{
		actor:    a,
		origin:   origin,
		radiusKm: radiusKm,
		limit:    limit,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyDeliveryPersonsQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyDeliveryPersonsQueryIsNotConstructed)
}

func (q GetNearbyDeliveryPersonsQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetNearbyDeliveryPersonsQuery) Origin() kernel.Location {
	return q.origin
}

func (q GetNearbyDeliveryPersonsQuery) RadiusKm() float64 {
	return q.radiusKm
}

func (q GetNearbyDeliveryPersonsQuery) Limit() int {
	return q.limit
}
