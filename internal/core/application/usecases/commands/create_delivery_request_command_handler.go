package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CreateDeliveryRequestCommandHandler stores new delivery requests in pending
// status and announces them with a new_delivery event.
//
// Example:
//
//	handler := NewCreateDeliveryRequestCommandHandler(uowFactory, publisher, logger)
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("create delivery request: %w", err)
//	}
//	// created.Status() == request.StatusPending
type CreateDeliveryRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateDeliveryRequestCommandHandler creates a handler for request creation.
func NewCreateDeliveryRequestCommandHandler(
	uowFactory RequestUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateDeliveryRequestCommandHandler {
	return CreateDeliveryRequestCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_delivery_request"),
	}
}

// Handle creates the request on behalf of the command's creator.
// Delivery persons cannot publish requests.
func (h *CreateDeliveryRequestCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryRequestCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	creator := cmd.Creator()
	if !creator.IsUser() && !creator.IsAdmin() {
		return nil, errs.NewPermissionDeniedError(creator.ID().String(), "create delivery requests")
	}

	created, err := request.NewDeliveryRequest(
		kernel.NewUUID(),
		creator.ID(),
		cmd.Pickup(),
		cmd.Dropoff(),
		cmd.Parcel(),
		cmd.Price(),
		cmd.EstimatedMinutes(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRequestRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "delivery request created",
		"request_id", created.ID().String(),
		"user_id", creator.ID().String(),
		"price", created.Price(),
	)
	publishEvents(ctx, h.publisher, h.logger, uow.CollectEvents())

	return created, nil
}
