package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/pkg/errs"
)

// RegisterDeliveryPersonCommandHandler creates delivery profiles. Each
// delivery-role user owns at most one profile.
type RegisterDeliveryPersonCommandHandler struct {
	uowFactory PersonUoWFactory
	logger     *slog.Logger
}

// NewRegisterDeliveryPersonCommandHandler creates a handler for profile registration.
func NewRegisterDeliveryPersonCommandHandler(
	uowFactory PersonUoWFactory,
	logger *slog.Logger,
) RegisterDeliveryPersonCommandHandler {
	return RegisterDeliveryPersonCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "register_delivery_person"),
	}
}

// Handle registers the profile and returns it. New profiles start available.
func (h *RegisterDeliveryPersonCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterDeliveryPersonCommand,
) (*person.DeliveryPerson, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	owner := cmd.Owner()
	if !owner.IsDelivery() {
		return nil, errs.NewPermissionDeniedError(owner.ID().String(), "register a delivery profile")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryPersonRepository()

	_, err := repo.GetByUserID(ctx, owner.ID())
	switch {
	case err == nil:
		return nil, errs.NewObjectAlreadyExistsError("delivery person for user", owner.ID().String())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	profile, err := person.NewDeliveryPerson(
		kernel.NewUUID(),
		owner.ID(),
		cmd.Vehicle(),
		cmd.LicensePlate(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, profile); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "delivery person registered",
		"delivery_person_id", profile.ID().String(),
		"user_id", owner.ID().String(),
		"vehicle", profile.Vehicle().String(),
	)

	return profile, nil
}
