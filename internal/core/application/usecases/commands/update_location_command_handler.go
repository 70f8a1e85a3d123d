package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateLocationCommandHandler stores the latest position of a delivery person
// and mirrors it into the location index.
//
// Business rules:
//   - Unknown person ids are a silent no-op (updated == false)
//   - Only the owning delivery person or an admin may report a position
//   - Last write wins, positions are not versioned
//   - An index failure is logged; the stored position stays authoritative
type UpdateLocationCommandHandler struct {
	uowFactory PersonUoWFactory
	index      ports.LocationIndex
	logger     *slog.Logger
}

// NewUpdateLocationCommandHandler creates a handler for location reports.
func NewUpdateLocationCommandHandler(
	uowFactory PersonUoWFactory,
	index ports.LocationIndex,
	logger *slog.Logger,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		index:      index,
		logger:     logger.With("component", "update_location"),
	}
}

// Handle stores the position. It reports whether a profile was updated.
func (h *UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryPersonRepository()

	profile, err := repo.Get(ctx, cmd.PersonID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.logger.WarnContext(ctx, "location reported for unknown delivery person",
			"delivery_person_id", cmd.PersonID().String(),
		)
		return false, nil
	}
	if err != nil {
		return false, err
	}

	a := cmd.Actor()
	if !a.IsAdmin() && !(a.IsDelivery() && profile.IsOwnedBy(a.ID())) {
		return false, errs.NewPermissionDeniedError(a.ID().String(), "report location of "+profile.ID().String())
	}

	updated, err := repo.UpdateLocation(ctx, cmd.PersonID(), cmd.Location(), time.Now())
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	if updated {
		if indexErr := h.index.Upsert(ctx, cmd.PersonID(), cmd.Location()); indexErr != nil {
			h.logger.ErrorContext(ctx, "failed to index location",
				"delivery_person_id", cmd.PersonID().String(),
				"error", indexErr,
			)
		}
	}

	return updated, nil
}
