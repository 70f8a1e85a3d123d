package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
)

// DeliveryPersonRepository defines the persistence contract for delivery person profiles.
type DeliveryPersonRepository interface {
	// Add persists a new profile. Returns errs.ErrAlreadyExists when the user
	// already owns one.
	Add(ctx context.Context, aggregate *person.DeliveryPerson) error

	// Update persists the profile fields except the position. Location columns
	// are owned by UpdateLocation so a report landing between a load and an
	// Update is never rolled back.
	Update(ctx context.Context, aggregate *person.DeliveryPerson) error

	// Get retrieves a profile by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*person.DeliveryPerson, error)

	// GetByUserID retrieves the profile owned by a delivery-role user.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*person.DeliveryPerson, error)

	// List returns profiles in registration order, optionally only available ones.
	List(ctx context.Context, availableOnly bool) ([]*person.DeliveryPerson, error)

	// UpdateLocation stores the latest reported position. Unknown ids are a
	// silent no-op reported as updated == false.
	UpdateLocation(ctx context.Context, id kernel.UUID, location kernel.Location, at time.Time) (bool, error)

	// ReleaseStale marks an available profile unavailable only while its last
	// report is still lastReport (nil when it never reported). It reports false
	// when the profile moved on in the meantime.
	ReleaseStale(ctx context.Context, id kernel.UUID, lastReport *time.Time) (bool, error)
}
