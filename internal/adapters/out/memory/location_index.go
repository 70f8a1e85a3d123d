package memory

import (
	"context"
	"sort"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// LocationIndex is an in-process ports.LocationIndex.
type LocationIndex struct {
	mu        sync.RWMutex
	positions map[kernel.UUID]kernel.Location
}

// NewLocationIndex creates an empty index.
func NewLocationIndex() *LocationIndex {
	return &LocationIndex{positions: make(map[kernel.UUID]kernel.Location)}
}

func (i *LocationIndex) Upsert(_ context.Context, personID kernel.UUID, location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.positions[personID] = location
	return nil
}

func (i *LocationIndex) Remove(_ context.Context, personID kernel.UUID) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.positions, personID)
	return nil
}

// Nearby scans every indexed position.
func (i *LocationIndex) Nearby(
	_ context.Context,
	origin kernel.Location,
	radiusKm float64,
	limit int,
) ([]kernel.UUID, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("radius", radiusKm, "0 (exclusive)", "unbounded")
	}

	type hit struct {
		id   kernel.UUID
		dist float64
	}

	i.mu.RLock()
	hits := make([]hit, 0, len(i.positions))
	for id, loc := range i.positions {
		d, err := origin.DistanceKm(loc)
		if err != nil {
			i.mu.RUnlock()
			return nil, err
		}
		if d <= radiusKm {
			hits = append(hits, hit{id: id, dist: d})
		}
	}
	i.mu.RUnlock()

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].dist != hits[b].dist {
			return hits[a].dist < hits[b].dist
		}
		return hits[a].id.String() < hits[b].id.String()
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	ids := make([]kernel.UUID, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.id)
	}
	return ids, nil
}
