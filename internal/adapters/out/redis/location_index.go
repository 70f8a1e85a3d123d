// Package redis keeps the latest delivery person positions in a Redis GEO set.
package redis

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultKey is the GEO set holding one member per delivery person id.
const DefaultKey = "delivery_persons:locations"

// LocationIndex implements ports.LocationIndex.
type LocationIndex struct {
	rdb goredis.Cmdable
	key string
}

// NewLocationIndex creates an index on rdb. An empty key selects DefaultKey.
func NewLocationIndex(rdb goredis.Cmdable, key string) *LocationIndex {
	if key == "" {
		key = DefaultKey
	}
	return &LocationIndex{rdb: rdb, key: key}
}

// Upsert stores or moves the person's position.
func (i *LocationIndex) Upsert(ctx context.Context, personID kernel.UUID, location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	return i.rdb.GeoAdd(ctx, i.key, &goredis.GeoLocation{
		Name:      personID.String(),
		Longitude: location.Lng(),
		Latitude:  location.Lat(),
	}).Err()
}

// Remove drops the person from the set.
func (i *LocationIndex) Remove(ctx context.Context, personID kernel.UUID) error {
	return i.rdb.ZRem(ctx, i.key, personID.String()).Err()
}

// Nearby returns ids within radiusKm of origin, nearest first. limit <= 0
// means no limit.
func (i *LocationIndex) Nearby(
	ctx context.Context,
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

	members, err := i.rdb.GeoSearch(ctx, i.key, &goredis.GeoSearchQuery{
		Longitude:  origin.Lng(),
		Latitude:   origin.Lat(),
		Radius:     radiusKm,
		RadiusUnit: "km",
		Count:      max(limit, 0),
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(members))
	for _, m := range members {
		id, parseErr := kernel.UUIDFromString(m)
		if parseErr != nil {
			return nil, parseErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}
