package queries

import (
	"context"

	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/services"
)

// GetDeliveryPersonsQueryHandler lists profiles through the visibility rules.
type GetDeliveryPersonsQueryHandler struct {
	persons PersonReader
	filter  services.VisibilityFilter
}

// NewGetDeliveryPersonsQueryHandler creates the handler.
func NewGetDeliveryPersonsQueryHandler(persons PersonReader) GetDeliveryPersonsQueryHandler {
	return GetDeliveryPersonsQueryHandler{
		persons: persons,
		filter:  services.NewVisibilityFilter(),
	}
}

// Handle returns the visible profiles in registration order.
func (h GetDeliveryPersonsQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryPersonsQuery,
) ([]*person.DeliveryPerson, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.persons.List(ctx, query.AvailableOnly())
	if err != nil {
		return nil, err
	}

	return h.filter.VisiblePersons(query.Actor(), all), nil
}
