package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// MaxTransitionAttempts bounds how often a transition is re-run after losing a
// version race.
const MaxTransitionAttempts = 3

// ApplyTransitionCommandHandler runs load, lifecycle rules and save inside a
// unit of work, then publishes the recorded events.
//
// Concurrency:
//   - The repository rejects stale writes with errs.ErrVersionIsInvalid
//   - The whole attempt is then re-run against the winner's state, so the loser
//     of an accept race ends with errs.ErrAlreadyAssigned and a transition
//     racing a cancel ends with errs.ErrInvalidTransition
//
// Example:
//
//	handler := NewApplyTransitionCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewApplyTransitionCommand(driver, requestID, request.StatusPickedUp)
//
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPermissionDenied):
//	    // not the assignee
//	case errors.Is(err, errs.ErrInvalidTransition):
//	    // wrong step
//	}
type ApplyTransitionCommandHandler struct {
	uowFactory RequestUoWFactory
	publisher  ports.EventPublisher
	engine     services.LifecycleEngine
	logger     *slog.Logger
}

// NewApplyTransitionCommandHandler creates a handler for lifecycle transitions.
func NewApplyTransitionCommandHandler(
	uowFactory RequestUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ApplyTransitionCommandHandler {
	return ApplyTransitionCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		engine:     services.NewLifecycleEngine(),
		logger:     logger.With("component", "apply_transition"),
	}
}

// Handle applies the transition and returns the updated request.
// A failed transition leaves the stored request unchanged.
func (h *ApplyTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd ApplyTransitionCommand,
) (*request.DeliveryRequest, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= MaxTransitionAttempts; attempt++ {
		updated, events, err := h.attempt(ctx, cmd)
		if err == nil {
			h.logger.InfoContext(ctx, "delivery request transitioned",
				"request_id", updated.ID().String(),
				"actor_id", cmd.Actor().ID().String(),
				"status", updated.Status().String(),
			)
			publishEvents(ctx, h.publisher, h.logger, events)
			return updated, nil
		}

		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return nil, err
		}

		h.logger.WarnContext(ctx, "version conflict, retrying transition",
			"request_id", cmd.RequestID().String(),
			"attempt", attempt,
		)
		lastErr = err
	}

	return nil, lastErr
}

func (h *ApplyTransitionCommandHandler) attempt(
	ctx context.Context,
	cmd ApplyTransitionCommand,
) (*request.DeliveryRequest, []request.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryRequestRepository()

	r, err := repo.Get(ctx, cmd.RequestID())
	if err != nil {
		return nil, nil, err
	}

	if err = h.engine.Apply(r, cmd.Actor(), cmd.Target(), time.Now()); err != nil {
		return nil, nil, err
	}

	if err = repo.Update(ctx, r); err != nil {
		return nil, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return r, uow.CollectEvents(), nil
}
