// Package request implements the DeliveryRequest aggregate and its lifecycle.
//
// The package includes:
//   - DeliveryRequest: the aggregate root for one shipment order
//   - Status: the lifecycle state machine (pending, accepted, picked_up,
//     in_transit, delivered, cancelled)
//   - Endpoint and Parcel: immutable value objects captured at creation
//   - Event: semantic notifications recorded by every successful mutation
//   - Bucket: the status groups used by the deliveries list
//
// Key business rules:
//   - New requests start pending and unassigned
//   - Exactly one delivery person can claim a pending request
//   - Only the table in Status.CanTransitionTo may be followed; role and
//     identity checks live in services.LifecycleEngine
//   - Delivered and cancelled are terminal
package request
