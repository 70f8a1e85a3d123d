// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifier for requests, delivery persons and actors
//   - Location: a validated latitude/longitude pair with great-circle distance
//
// Both types are immutable. Their zero values are invalid and fail Validate,
// so aggregates can detect fields that were never set through a constructor.
package kernel
