package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// GetNearbyDeliveryPersonsQueryHandler narrows candidates with the location
// index, then re-checks availability and distance against the stored profiles.
// Index entries whose profile vanished are skipped.
type GetNearbyDeliveryPersonsQueryHandler struct {
	index   ports.LocationIndex
	persons PersonReader
	finder  services.NearbyFinder
}

// NewGetNearbyDeliveryPersonsQueryHandler creates the handler.
func NewGetNearbyDeliveryPersonsQueryHandler(
	index ports.LocationIndex,
	persons PersonReader,
) GetNearbyDeliveryPersonsQueryHandler {
	return GetNearbyDeliveryPersonsQueryHandler{
		index:   index,
		persons: persons,
		finder:  services.NewNearbyFinder(),
	}
}

// Handle returns candidates nearest first. Admin only.
func (h GetNearbyDeliveryPersonsQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyDeliveryPersonsQuery,
) ([]services.Nearby, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	a := query.Actor()
	if !a.IsAdmin() {
		return nil, errs.NewPermissionDeniedError(a.ID().String(), "search delivery persons")
	}

	ids, err := h.index.Nearby(ctx, query.Origin(), query.RadiusKm(), 0)
	if err != nil {
		return nil, err
	}

	candidates := make([]*person.DeliveryPerson, 0, len(ids))
	for _, id := range ids {
		p, getErr := h.persons.Get(ctx, id)
		if errors.Is(getErr, errs.ErrObjectNotFound) {
			continue
		}
		if getErr != nil {
			return nil, getErr
		}
		candidates = append(candidates, p)
	}

	ranked, err := h.finder.Find(query.Origin(), candidates, query.RadiusKm(), query.Limit())
	if errors.Is(err, services.ErrNoDeliveryPersonNearby) {
		return []services.Nearby{}, nil
	}
	if err != nil {
		return nil, err
	}

	return ranked, nil
}
