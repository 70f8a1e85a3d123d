package memory

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/pkg/errs"
)

// DeliveryPersonRepository implements ports.DeliveryPersonRepository on a Store.
type DeliveryPersonRepository struct {
	store   *Store
	tracker aggregateTracker
}

// NewDeliveryPersonRepository creates a repository over store.
func NewDeliveryPersonRepository(store *Store, tracker aggregateTracker) *DeliveryPersonRepository {
	return &DeliveryPersonRepository{store: store, tracker: tracker}
}

// Add saves a new profile. A user owns at most one.
func (r *DeliveryPersonRepository) Add(_ context.Context, aggregate *person.DeliveryPerson) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.persons[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("delivery person", aggregate.ID().String())
	}
	if _, ok := r.store.personByUser[aggregate.UserID()]; ok {
		return errs.NewObjectAlreadyExistsError("delivery person for user", aggregate.UserID().String())
	}

	rec := personRecordFrom(aggregate)
	r.store.persons[rec.id] = rec
	r.store.personByUser[rec.userID] = rec.id
	r.store.personOrder = append(r.store.personOrder, rec.id)

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update replaces the stored profile but keeps the stored position.
func (r *DeliveryPersonRepository) Update(_ context.Context, aggregate *person.DeliveryPerson) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.persons[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("delivery person", aggregate.ID().String())
	}
	rec := personRecordFrom(aggregate)
	rec.location = current.location
	rec.locationUpdatedAt = current.locationUpdatedAt
	r.store.persons[aggregate.ID()] = rec

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get restores the profile with the given id.
func (r *DeliveryPersonRepository) Get(_ context.Context, id kernel.UUID) (*person.DeliveryPerson, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	rec, ok := r.store.persons[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery person", id.String())
	}

	return rec.restore()
}

// GetByUserID restores the profile owned by userID.
func (r *DeliveryPersonRepository) GetByUserID(_ context.Context, userID kernel.UUID) (*person.DeliveryPerson, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	var (
		rec personRecord
		ok  bool
	)
	if id, found := r.store.personByUser[userID]; found {
		rec, ok = r.store.persons[id]
	}
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery person for user", userID.String())
	}

	return rec.restore()
}

// List restores profiles in registration order.
func (r *DeliveryPersonRepository) List(_ context.Context, availableOnly bool) ([]*person.DeliveryPerson, error) {
	r.store.mu.RLock()
	records := make([]personRecord, 0, len(r.store.personOrder))
	for _, id := range r.store.personOrder {
		rec := r.store.persons[id]
		if availableOnly && !rec.available {
			continue
		}
		records = append(records, rec)
	}
	r.store.mu.RUnlock()

	persons := make([]*person.DeliveryPerson, 0, len(records))
	for _, rec := range records {
		restored, err := rec.restore()
		if err != nil {
			return nil, err
		}
		persons = append(persons, restored)
	}

	return persons, nil
}

// UpdateLocation stores the position; unknown ids report false.
func (r *DeliveryPersonRepository) UpdateLocation(
	_ context.Context,
	id kernel.UUID,
	location kernel.Location,
	at time.Time,
) (bool, error) {
	if err := location.Validate(); err != nil {
		return false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.persons[id]
	if !ok {
		return false, nil
	}

	reportedAt := at.UTC()
	rec.location = &location
	rec.locationUpdatedAt = &reportedAt
	r.store.persons[id] = rec

	return true, nil
}

// ReleaseStale takes the profile out of the pool unless a newer report arrived.
func (r *DeliveryPersonRepository) ReleaseStale(
	_ context.Context,
	id kernel.UUID,
	lastReport *time.Time,
) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.persons[id]
	if !ok || !rec.available || !sameReport(rec.locationUpdatedAt, lastReport) {
		return false, nil
	}

	rec.available = false
	r.store.persons[id] = rec
	return true, nil
}

func sameReport(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
