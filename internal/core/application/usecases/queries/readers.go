// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Every query applies the role-based visibility rules before returning data.
package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"
)

// Read-side views of the repositories. Queries never write.
type (
	RequestReader interface {
		Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error)
		List(ctx context.Context) ([]*request.DeliveryRequest, error)
	}

	PersonReader interface {
		Get(ctx context.Context, id kernel.UUID) (*person.DeliveryPerson, error)
		GetByUserID(ctx context.Context, userID kernel.UUID) (*person.DeliveryPerson, error)
		List(ctx context.Context, availableOnly bool) ([]*person.DeliveryPerson, error)
	}
)
