package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/pkg/errs"
)

// SetAvailabilityCommandHandler lets the owning delivery person or an admin
// toggle the available flag.
type SetAvailabilityCommandHandler struct {
	uowFactory PersonUoWFactory
	logger     *slog.Logger
}

// NewSetAvailabilityCommandHandler creates a handler for availability changes.
func NewSetAvailabilityCommandHandler(uowFactory PersonUoWFactory, logger *slog.Logger) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "set_availability"),
	}
}

// Handle updates the flag and returns the profile.
func (h *SetAvailabilityCommandHandler) Handle(
	ctx context.Context,
	cmd SetAvailabilityCommand,
) (*person.DeliveryPerson, error) {
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

	profile, err := repo.Get(ctx, cmd.PersonID())
	if err != nil {
		return nil, err
	}

	a := cmd.Actor()
	if !a.IsAdmin() && !(a.IsDelivery() && profile.IsOwnedBy(a.ID())) {
		return nil, errs.NewPermissionDeniedError(a.ID().String(), "change availability of "+profile.ID().String())
	}

	profile.SetAvailability(cmd.Available())

	if err = repo.Update(ctx, profile); err != nil {
		return nil, err
	}

	// Update leaves the position alone; reload so the response carries the stored one.
	if profile, err = repo.Get(ctx, cmd.PersonID()); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "availability changed",
		"delivery_person_id", profile.ID().String(),
		"available", profile.IsAvailable(),
	)

	return profile, nil
}
