package kernel

import (
	"errors"
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	// LatitudeMin is the southernmost valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the northernmost valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the westernmost valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the easternmost valid longitude in degrees.
	LongitudeMax = 180.0

	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
// Locations must be created using the NewLocation constructor to ensure validity.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location represents a WGS84 point (latitude, longitude in degrees).
// Location is an immutable value object; the zero value is invalid and fails validation.
//
// Locations appear on both request endpoints (pickup and dropoff) and as the
// last reported position of a delivery person.
//
// Example:
//
//	loc, err := kernel.NewLocation(40.7128, -74.0060)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Location: %s", loc) // Output: Location(40.712800,-74.006000)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a new Location with the specified coordinates.
// Latitude must be within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]. NaN values are rejected.
//
// Parameters:
//   - lat: latitude in degrees
//   - lng: longitude in degrees
//
// Returns:
//   - Location: A valid location instance
//   - error: Validation error if either coordinate is out of range
func NewLocation(lat, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks if the Location was properly constructed using a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String returns the location in the format "Location(lat,lng)" with six decimals.
func (l Location) String() string {
	return fmt.Sprintf("Location(%.6f,%.6f)", l.lat, l.lng)
}

// IsEqual compares two locations for equality.
// Both locations must be properly constructed for the comparison to succeed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// DistanceKm calculates the great-circle distance between two locations using
// the haversine formula on a spherical Earth of radius 6371 km.
//
// Parameters:
//   - other: The Location to calculate distance to
//
// Returns:
//   - float64: distance in kilometres, symmetric and zero for identical points
//   - error: Validation error if either location is improperly constructed
//
// Example:
//
//	paris, _ := NewLocation(48.8566, 2.3522)
//	london, _ := NewLocation(51.5074, -0.1278)
//	d, _ := paris.DistanceKm(london) // d ≈ 343.5
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.lat)
	lat2 := toRadians(other.lat)
	dLat := lat2 - lat1
	dLng := toRadians(other.lng - l.lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	h = math.Min(1, h)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h)), nil
}

// setLat uses a pointer receiver so the constructor can validate in place.
func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
