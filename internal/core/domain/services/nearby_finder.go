package services

import (
	"errors"
	"sort"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/pkg/errs"
)

// ErrNoDeliveryPersonNearby is returned when no available delivery person with a
// known location lies within the search radius.
var ErrNoDeliveryPersonNearby = errors.New("no delivery person nearby")

// Nearby pairs a delivery person with its great-circle distance to the search origin.
type Nearby struct {
	Person     *person.DeliveryPerson
	DistanceKm float64
}

// NearbyFinder ranks available delivery persons by distance to an origin.
//
// Business rules:
//   - Only available persons with a reported location are considered
//   - Persons farther than radiusKm are skipped
//   - Results are ordered by ascending distance; ties keep input order
//   - At most limit results are returned (limit <= 0 means no limit)
//
// Example usage:
//
//	finder := NewNearbyFinder()
//	origin, _ := kernel.NewLocation(23.1319, -82.3841)
//	ranked, err := finder.Find(origin, persons, 5, 10)
//	if errors.Is(err, ErrNoDeliveryPersonNearby) {
//	    // nobody close enough
//	}
type NearbyFinder struct{}

// NewNearbyFinder creates a new NearbyFinder instance.
func NewNearbyFinder() NearbyFinder {
	return NearbyFinder{}
}

// Find returns the ranked candidates around origin.
//
// Returns:
//   - []Nearby: candidates ordered by distance
//   - error: ErrNoDeliveryPersonNearby when nobody qualifies, or a validation error
func (f NearbyFinder) Find(
	origin kernel.Location,
	persons []*person.DeliveryPerson,
	radiusKm float64,
	limit int,
) ([]Nearby, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	if radiusKm <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("radius", radiusKm, "0 (exclusive)", "unbounded")
	}

	candidates := make([]Nearby, 0, len(persons))
	for _, p := range persons {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		loc := p.Location()
		if !p.IsAvailable() || loc == nil {
			continue
		}

		d, err := origin.DistanceKm(*loc)
		if err != nil {
			return nil, err
		}

		if d <= radiusKm {
			candidates = append(candidates, Nearby{Person: p, DistanceKm: d})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoDeliveryPersonNearby
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	return candidates, nil
}
