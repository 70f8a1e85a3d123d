package queries

import (
	"context"

	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/domain/services"
)

// GetVisibleDeliveryRequestsQueryHandler recomputes the actor's view on every
// call; nothing is cached.
type GetVisibleDeliveryRequestsQueryHandler struct {
	requests RequestReader
	filter   services.VisibilityFilter
}

// NewGetVisibleDeliveryRequestsQueryHandler creates the handler.
func NewGetVisibleDeliveryRequestsQueryHandler(requests RequestReader) GetVisibleDeliveryRequestsQueryHandler {
	return GetVisibleDeliveryRequestsQueryHandler{
		requests: requests,
		filter:   services.NewVisibilityFilter(),
	}
}

// Handle returns the visible requests in insertion order.
func (h GetVisibleDeliveryRequestsQueryHandler) Handle(
	ctx context.Context,
	query GetVisibleDeliveryRequestsQuery,
) ([]*request.DeliveryRequest, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	all, err := h.requests.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := h.filter.VisibleRequests(query.Actor(), all)

	status := query.Status()
	result := make([]*request.DeliveryRequest, 0, len(visible))
	for _, r := range visible {
		if !query.Bucket().Contains(r.Status()) {
			continue
		}
		if status != nil && r.Status() != *status {
			continue
		}
		result = append(result, r)
	}

	return result, nil
}
