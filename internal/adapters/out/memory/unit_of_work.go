package memory

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"
)

// ErrNoActiveTransaction is returned by Commit and Rollback outside Begin.
var ErrNoActiveTransaction = errors.New("no active transaction")

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// UnitOfWorkFactory creates units of work over a shared Store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory for store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a fresh unit of work.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{
		store:             f.store,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// UnitOfWork scopes repository access and tracks written aggregates.
// Each repository write is atomic on its own and applied immediately: every
// command writes a single aggregate kind, and version checks guard the races
// that matter.
type UnitOfWork struct {
	store             *Store
	active            bool
	trackedAggregates []trackedAggregate
}

// Begin opens the unit of work. Repeated calls are no-ops.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

// Commit closes the unit of work.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	return nil
}

// Rollback closes the unit of work and forgets tracked aggregates.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.active = false
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

func (uow *UnitOfWork) DeliveryRequestRepository() ports.DeliveryRequestRepository {
	return NewDeliveryRequestRepository(uow.store, uow)
}

func (uow *UnitOfWork) DeliveryPersonRepository() ports.DeliveryPersonRepository {
	return NewDeliveryPersonRepository(uow.store, uow)
}

// TrackAggregate registers an aggregate written through this unit of work.
func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{ID: id, Aggregate: aggregate})
}

// CollectEvents drains the events of tracked delivery requests.
func (uow *UnitOfWork) CollectEvents() []request.Event {
	return collectEvents(uow.trackedAggregates)
}

func collectEvents(tracked []trackedAggregate) []request.Event {
	events := make([]request.Event, 0)
	for _, t := range tracked {
		r, ok := t.Aggregate.(*request.DeliveryRequest)
		if !ok {
			continue
		}
		events = append(events, r.DomainEvents()...)
		r.ClearDomainEvents()
	}
	return events
}
