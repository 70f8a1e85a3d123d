package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// LocationIndex is a geo index of the last known delivery person positions.
type LocationIndex interface {
	// Upsert records the position of a delivery person.
	Upsert(ctx context.Context, personID kernel.UUID, location kernel.Location) error

	// Remove drops a delivery person from the index. Unknown ids are ignored.
	Remove(ctx context.Context, personID kernel.UUID) error

	// Nearby returns person ids within radiusKm of origin, nearest first.
	// limit <= 0 means no limit.
	Nearby(ctx context.Context, origin kernel.Location, radiusKm float64, limit int) ([]kernel.UUID, error)
}
