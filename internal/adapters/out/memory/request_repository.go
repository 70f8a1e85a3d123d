package memory

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/errs"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// DeliveryRequestRepository implements ports.DeliveryRequestRepository on a Store.
type DeliveryRequestRepository struct {
	store   *Store
	tracker aggregateTracker
}

// NewDeliveryRequestRepository creates a repository over store.
func NewDeliveryRequestRepository(store *Store, tracker aggregateTracker) *DeliveryRequestRepository {
	return &DeliveryRequestRepository{store: store, tracker: tracker}
}

// Add saves a new request with version 1.
func (r *DeliveryRequestRepository) Add(_ context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.requests[aggregate.ID()]; ok {
		return errs.NewObjectAlreadyExistsError("delivery request", aggregate.ID().String())
	}

	rec := requestRecordFrom(aggregate)
	rec.version = 1
	r.store.requests[rec.id] = rec
	r.store.requestOrder = append(r.store.requestOrder, rec.id)
	aggregate.SetVersion(rec.version)

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update replaces the stored request if its version still matches.
func (r *DeliveryRequestRepository) Update(_ context.Context, aggregate *request.DeliveryRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.requests[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("delivery request", aggregate.ID().String())
	}
	if current.version != aggregate.Version() {
		return errs.NewVersionIsInvalidError("delivery request " + aggregate.ID().String())
	}

	rec := requestRecordFrom(aggregate)
	rec.version = current.version + 1
	r.store.requests[rec.id] = rec
	aggregate.SetVersion(rec.version)

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get restores the request with the given id.
func (r *DeliveryRequestRepository) Get(_ context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	rec, ok := r.store.requests[id]
	r.store.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery request", id.String())
	}

	return rec.restore()
}

// List restores every request in insertion order.
func (r *DeliveryRequestRepository) List(_ context.Context) ([]*request.DeliveryRequest, error) {
	r.store.mu.RLock()
	records := make([]requestRecord, 0, len(r.store.requestOrder))
	for _, id := range r.store.requestOrder {
		records = append(records, r.store.requests[id])
	}
	r.store.mu.RUnlock()

	requests := make([]*request.DeliveryRequest, 0, len(records))
	for _, rec := range records {
		restored, err := rec.restore()
		if err != nil {
			return nil, err
		}
		requests = append(requests, restored)
	}

	return requests, nil
}
