package person

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// RatingMin and RatingMax bound the running average maintained by the rating subsystem.
	RatingMin = 0.0
	RatingMax = 5.0
)

// ErrDeliveryPersonIsNotConstructed is returned when using an improperly initialized DeliveryPerson.
var ErrDeliveryPersonIsNotConstructed = errors.New(
	"DeliveryPerson must be created via NewDeliveryPerson or RestoreDeliveryPerson constructor")

// DeliveryPerson is the availability and location profile of a delivery-role user.
// It is an aggregate root separate from DeliveryRequest: accepting a request never
// touches the profile, and location reports never touch requests.
//
// Business rules:
//   - Exactly one profile per delivery-role user (enforced by the repository)
//   - Vehicle type is one of bike, motorcycle, car, walking
//   - The current location is absent until the first report
//   - Rating and completed deliveries are maintained elsewhere and only restored here
//
// Example usage:
//
//	p, err := person.NewDeliveryPerson(kernel.NewUUID(), userID, person.VehicleMotorcycle, "M-1234-AB", time.Now())
//	if err != nil {
//	    // Handle construction error
//	}
//	loc, _ := kernel.NewLocation(23.1350, -82.3700)
//	_ = p.UpdateLocation(loc, time.Now())
type DeliveryPerson struct {
	// id uniquely identifies the profile
	id kernel.UUID
	// userID links the profile to its delivery-role user
	userID kernel.UUID
	// vehicle is the means of transport
	vehicle VehicleType
	// licensePlate is optional; walking and bike profiles usually leave it empty
	licensePlate string
	// available marks the person as ready to take work
	available bool
	// location is the last reported position, nil until the first report
	location *kernel.Location
	// locationUpdatedAt is when location was last reported
	locationUpdatedAt *time.Time
	// rating is the running average of customer ratings
	rating float64
	// completedDeliveries counts delivered requests
	completedDeliveries int
	// createdAt is when the profile was registered
	createdAt time.Time
	// guard ensures the profile was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryPerson registers a new profile. New profiles start available with
// no location, no rating and no completed deliveries.
//
// Parameters:
//   - id: identifier of the profile
//   - userID: the delivery-role user owning the profile
//   - vehicle: means of transport
//   - licensePlate: optional plate, trimmed
//   - now: registration instant
//
// Returns:
//   - *DeliveryPerson: the registered profile
//   - error: joined validation errors
func NewDeliveryPerson(
	id kernel.UUID,
	userID kernel.UUID,
	vehicle VehicleType,
	licensePlate string,
	now time.Time,
) (*DeliveryPerson, error) {
	p := &DeliveryPerson{
		guard:        guard.NewConstructorGuard(),
		licensePlate: strings.TrimSpace(licensePlate),
		available:    true,
		createdAt:    now.UTC(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setUserID(userID),
		p.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreDeliveryPerson reconstructs a profile from persistent storage.
// location and locationUpdatedAt must be both set or both nil.
func RestoreDeliveryPerson(
	id kernel.UUID,
	userID kernel.UUID,
	vehicle VehicleType,
	licensePlate string,
	available bool,
	location *kernel.Location,
	locationUpdatedAt *time.Time,
	rating float64,
	completedDeliveries int,
	createdAt time.Time,
) (*DeliveryPerson, error) {
	p := &DeliveryPerson{
		guard:        guard.NewConstructorGuard(),
		licensePlate: strings.TrimSpace(licensePlate),
		available:    available,
		createdAt:    createdAt.UTC(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setUserID(userID),
		p.setVehicle(vehicle),
		p.setRating(rating),
		p.setCompletedDeliveries(completedDeliveries),
		p.restoreLocation(location, locationUpdatedAt),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks if the profile was properly constructed.
func (p *DeliveryPerson) Validate() error {
	if p == nil {
		return ErrDeliveryPersonIsNotConstructed
	}
	return p.guard.Validate(ErrDeliveryPersonIsNotConstructed)
}

// IsEqual compares two profiles by identifier.
func (p *DeliveryPerson) IsEqual(other *DeliveryPerson) bool {
	if other == nil {
		return false
	}
	return p.id.IsEqual(other.id)
}

func (p *DeliveryPerson) ID() kernel.UUID { return p.id }

func (p *DeliveryPerson) UserID() kernel.UUID { return p.userID }

func (p *DeliveryPerson) Vehicle() VehicleType { return p.vehicle }

func (p *DeliveryPerson) LicensePlate() string { return p.licensePlate }

func (p *DeliveryPerson) IsAvailable() bool { return p.available }

// Location returns a copy of the last reported position, nil before the first report.
func (p *DeliveryPerson) Location() *kernel.Location {
	if p.location == nil {
		return nil
	}
	loc := *p.location
	return &loc
}

// LocationUpdatedAt returns when the location was last reported, nil before the first report.
func (p *DeliveryPerson) LocationUpdatedAt() *time.Time {
	if p.locationUpdatedAt == nil {
		return nil
	}
	at := *p.locationUpdatedAt
	return &at
}

func (p *DeliveryPerson) Rating() float64 { return p.rating }

func (p *DeliveryPerson) CompletedDeliveries() int { return p.completedDeliveries }

func (p *DeliveryPerson) CreatedAt() time.Time { return p.createdAt }

// IsOwnedBy reports whether the profile belongs to the given user.
func (p *DeliveryPerson) IsOwnedBy(userID kernel.UUID) bool { return p.userID.IsEqual(userID) }

// SetAvailability toggles whether the person is ready to take work.
func (p *DeliveryPerson) SetAvailability(available bool) {
	p.available = available
}

// UpdateLocation records a new position. Reports are last-write-wins.
func (p *DeliveryPerson) UpdateLocation(location kernel.Location, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}

	reportedAt := at.UTC()
	p.location = &location
	p.locationUpdatedAt = &reportedAt
	return nil
}

// IsLocationStale reports whether the person has gone longer than maxAge without
// reporting a location. Profiles that never reported count from registration.
func (p *DeliveryPerson) IsLocationStale(now time.Time, maxAge time.Duration) bool {
	last := p.createdAt
	if p.locationUpdatedAt != nil {
		last = *p.locationUpdatedAt
	}
	return now.Sub(last) > maxAge
}

func (p *DeliveryPerson) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DeliveryPerson) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	p.userID = userID
	return nil
}

func (p *DeliveryPerson) setVehicle(vehicle VehicleType) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	p.vehicle = vehicle
	return nil
}

func (p *DeliveryPerson) setRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	p.rating = rating
	return nil
}

func (p *DeliveryPerson) setCompletedDeliveries(n int) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause("completed deliveries", fmt.Errorf("%d is negative", n))
	}
	p.completedDeliveries = n
	return nil
}

func (p *DeliveryPerson) restoreLocation(location *kernel.Location, at *time.Time) error {
	if (location == nil) != (at == nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"location",
			errors.New("location and its report time must be set together"),
		)
	}
	if location == nil {
		return nil
	}
	return p.UpdateLocation(*location, *at)
}
