package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
)

// ReleaseStaleDeliveryPersonsCommandHandler sweeps available delivery persons
// whose last position is older than the allowed age and takes them out of the
// pool and the location index.
//
// Example:
//
//	cmd, _ := NewReleaseStaleDeliveryPersonsCommand(5*time.Minute, time.Now())
//	released, err := handler.Handle(ctx, cmd)
type ReleaseStaleDeliveryPersonsCommandHandler struct {
	uowFactory PersonUoWFactory
	index      ports.LocationIndex
	logger     *slog.Logger
}

// NewReleaseStaleDeliveryPersonsCommandHandler creates the sweep handler.
func NewReleaseStaleDeliveryPersonsCommandHandler(
	uowFactory PersonUoWFactory,
	index ports.LocationIndex,
	logger *slog.Logger,
) ReleaseStaleDeliveryPersonsCommandHandler {
	return ReleaseStaleDeliveryPersonsCommandHandler{
		uowFactory: uowFactory,
		index:      index,
		logger:     logger.With("component", "release_stale_delivery_persons"),
	}
}

// Handle runs the sweep and returns the ids of released persons.
func (h *ReleaseStaleDeliveryPersonsCommandHandler) Handle(
	ctx context.Context,
	cmd ReleaseStaleDeliveryPersonsCommand,
) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryPersonRepository()

	available, err := repo.List(ctx, true)
	if err != nil {
		return nil, err
	}

	released := make([]kernel.UUID, 0)
	for _, p := range available {
		if !p.IsLocationStale(cmd.Now(), cmd.MaxAge()) {
			continue
		}

		ok, releaseErr := repo.ReleaseStale(ctx, p.ID(), p.LocationUpdatedAt())
		if releaseErr != nil {
			return nil, releaseErr
		}
		if !ok {
			// reported or went offline since the listing
			continue
		}
		released = append(released, p.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, id := range released {
		if indexErr := h.index.Remove(ctx, id); indexErr != nil {
			h.logger.ErrorContext(ctx, "failed to drop stale location",
				"delivery_person_id", id.String(),
				"error", indexErr,
			)
		}
	}

	if len(released) > 0 {
		h.logger.InfoContext(ctx, "released stale delivery persons", "count", len(released))
	}

	return released, nil
}
