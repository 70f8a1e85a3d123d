// Package services provides domain services whose rules span more than one
// aggregate or depend on who is acting.
//
// The package includes:
//   - LifecycleEngine: role and identity rules for request transitions
//   - VisibilityFilter: what each role may list, open and receive
//   - NearbyFinder: ranks available delivery persons by distance
//   - StatsCalculator: the admin dashboard aggregates
//
// All services are stateless values and safe for concurrent use.
package services
