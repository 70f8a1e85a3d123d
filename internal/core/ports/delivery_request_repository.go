// Package ports defines the contracts between the marketplace core and its
// infrastructure: persistence, unit of work, event publishing and the
// location index.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
)

// DeliveryRequestRepository defines the persistence contract for delivery requests.
type DeliveryRequestRepository interface {
	// Add persists a new request. Its version becomes 1.
	Add(ctx context.Context, aggregate *request.DeliveryRequest) error

	// Update persists a changed request using compare-and-swap on its version.
	// Returns an errs.ErrVersionIsInvalid error when another writer won the race
	// and errs.ErrObjectNotFound when the request does not exist. On success the
	// aggregate's version is advanced.
	Update(ctx context.Context, aggregate *request.DeliveryRequest) error

	// Get retrieves a request by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error)

	// List returns every request in insertion order.
	List(ctx context.Context) ([]*request.DeliveryRequest, error)
}
