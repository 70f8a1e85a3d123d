package queries

import (
	"context"

	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
)

// GetDeliveryRequestQueryHandler returns one request if the actor may view it.
type GetDeliveryRequestQueryHandler struct {
	requests RequestReader
	filter   services.VisibilityFilter
}

// NewGetDeliveryRequestQueryHandler creates the handler.
func NewGetDeliveryRequestQueryHandler(requests RequestReader) GetDeliveryRequestQueryHandler {
	return GetDeliveryRequestQueryHandler{
		requests: requests,
		filter:   services.NewVisibilityFilter(),
	}
}

// Handle returns errs.ErrObjectNotFound for unknown ids and
// errs.ErrPermissionDenied when the request is outside the actor's view.
func (h GetDeliveryRequestQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryRequestQuery,
) (*request.DeliveryRequest, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	r, err := h.requests.Get(ctx, query.RequestID())
	if err != nil {
		return nil, err
	}

	if !h.filter.CanView(query.Actor(), r) {
		return nil, errs.NewPermissionDeniedError(query.Actor().ID().String(), "view "+r.ID().String())
	}

	return r, nil
}
