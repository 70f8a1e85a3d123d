package request

import (
	"errors"
	"fmt"
	"math"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrDeliveryRequestIsNotConstructed is returned when a DeliveryRequest was not
// created through NewDeliveryRequest or RestoreDeliveryRequest.
var ErrDeliveryRequestIsNotConstructed = errors.New(
	"DeliveryRequest must be created via NewDeliveryRequest or RestoreDeliveryRequest constructor")

// DeliveryRequest is the aggregate root for one shipment order. It owns the
// request lifecycle from creation in the available pool to delivery or cancellation.
//
// DeliveryRequest follows these invariants:
//   - Creator, endpoints, parcel and price never change after creation
//   - A delivery person is set if and only if the status is accepted,
//     picked_up, in_transit or delivered
//   - Delivered and cancelled requests are never mutated again
//   - updatedAt moves on every successful mutation
//
// Every successful mutation records an Event, collected by the unit of work
// and published after commit.
type DeliveryRequest struct {
	id               kernel.UUID
	userID           kernel.UUID
	deliveryPersonID *kernel.UUID

	pickup  Endpoint
	dropoff Endpoint
	parcel  Parcel

	status           Status
	price            float64
	estimatedMinutes int

	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency counter of the persisted row.
	version int

	events []Event

	isConstructed bool
}

// NewDeliveryRequest creates a pending, unassigned request. This is the only way
// to create a new valid DeliveryRequest.
//
// Parameters:
//   - id: identifier for the request
//   - userID: the creating user; immutable
//   - pickup, dropoff: validated endpoints
//   - parcel: validated parcel description
//   - price: estimated price, must be a finite number > 0; never recalculated
//   - estimatedMinutes: optional delivery estimate, 0 when unknown, never negative
//   - now: creation instant; createdAt and updatedAt are both set to it (UTC)
//
// Returns:
//   - *DeliveryRequest: the created request with a recorded new_delivery event
//   - error: all validation failures joined
//
// Example:
//
//	r, err := request.NewDeliveryRequest(kernel.NewUUID(), userID, pickup, dropoff, parcel, 8.50, 0, time.Now())
//	if err != nil {
//	    // errs.IsValidation(err) == true
//	}
func NewDeliveryRequest(
	id kernel.UUID,
	userID kernel.UUID,
	pickup Endpoint,
	dropoff Endpoint,
	parcel Parcel,
	price float64,
	estimatedMinutes int,
	now time.Time,
) (*DeliveryRequest, error) {
	r := &DeliveryRequest{
		status:        StatusPending,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setUserID(userID),
		r.setPickup(pickup),
		r.setDropoff(dropoff),
		r.setParcel(parcel),
		r.setPrice(price),
		r.setEstimatedMinutes(estimatedMinutes),
	); err != nil {
		return nil, err
	}

	r.createdAt = now.UTC()
	r.updatedAt = r.createdAt
	r.record(StatusPending, nil)

	return r, nil
}

// RestoreDeliveryRequest reconstructs a DeliveryRequest from persistent storage.
// No events are recorded. The status/assignment invariant is checked so that a
// corrupted row never enters the domain.
func RestoreDeliveryRequest(
	id kernel.UUID,
	userID kernel.UUID,
	deliveryPersonID *kernel.UUID,
	pickup Endpoint,
	dropoff Endpoint,
	parcel Parcel,
	status Status,
	price float64,
	estimatedMinutes int,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) (*DeliveryRequest, error) {
	r := &DeliveryRequest{
		isConstructed: true,
		createdAt:     createdAt.UTC(),
		updatedAt:     updatedAt.UTC(),
		version:       version,
	}

	if err := errors.Join(
		r.setID(id),
		r.setUserID(userID),
		r.setPickup(pickup),
		r.setDropoff(dropoff),
		r.setParcel(parcel),
		r.setPrice(price),
		r.setEstimatedMinutes(estimatedMinutes),
		status.Validate(),
		status.ValidateCanHaveDeliveryPerson(deliveryPersonID != nil),
	); err != nil {
		return nil, err
	}

	if deliveryPersonID != nil {
		if err := deliveryPersonID.Validate(); err != nil {
			return nil, err
		}
		dp := *deliveryPersonID
		r.deliveryPersonID = &dp
	}
	r.status = status

	return r, nil
}

// Validate ensures the request was properly constructed.
func (r *DeliveryRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrDeliveryRequestIsNotConstructed
	}
	return nil
}

// IsEqual compares two requests by identifier.
func (r *DeliveryRequest) IsEqual(other *DeliveryRequest) bool {
	return other != nil && r.id.IsEqual(other.id)
}

func (r *DeliveryRequest) ID() kernel.UUID { return r.id }

// UserID returns the creator of the request.
func (r *DeliveryRequest) UserID() kernel.UUID { return r.userID }

// DeliveryPersonID returns a copy of the assignee id, nil while unassigned.
func (r *DeliveryRequest) DeliveryPersonID() *kernel.UUID {
	if r.deliveryPersonID == nil {
		return nil
	}
	id := *r.deliveryPersonID
	return &id
}

// IsAssigned reports whether a delivery person holds the request.
func (r *DeliveryRequest) IsAssigned() bool { return r.deliveryPersonID != nil }

// IsAssignedTo reports whether the given delivery person holds the request.
func (r *DeliveryRequest) IsAssignedTo(deliveryPersonID kernel.UUID) bool {
	return r.deliveryPersonID != nil && r.deliveryPersonID.IsEqual(deliveryPersonID)
}

// IsCreatedBy reports whether the given user created the request.
func (r *DeliveryRequest) IsCreatedBy(userID kernel.UUID) bool { return r.userID.IsEqual(userID) }

func (r *DeliveryRequest) Pickup() Endpoint { return r.pickup }

func (r *DeliveryRequest) Dropoff() Endpoint { return r.dropoff }

func (r *DeliveryRequest) Parcel() Parcel { return r.parcel }

func (r *DeliveryRequest) Status() Status { return r.status }

func (r *DeliveryRequest) Price() float64 { return r.price }

// EstimatedMinutes returns the delivery estimate in minutes, 0 when unknown.
func (r *DeliveryRequest) EstimatedMinutes() int { return r.estimatedMinutes }

func (r *DeliveryRequest) CreatedAt() time.Time { return r.createdAt }

func (r *DeliveryRequest) UpdatedAt() time.Time { return r.updatedAt }

// Version returns the optimistic concurrency counter last seen in storage.
func (r *DeliveryRequest) Version() int { return r.version }

// SetVersion is called by repositories after a successful write.
func (r *DeliveryRequest) SetVersion(version int) { r.version = version }

// IsInAvailablePool reports whether the request can be claimed: pending and unassigned.
func (r *DeliveryRequest) IsInAvailablePool() bool {
	return r.status == StatusPending && r.deliveryPersonID == nil
}

// Accept claims a pending request for a delivery person.
//
// Returns:
//   - *errs.AlreadyAssignedError if a delivery person already holds the request
//   - *errs.InvalidTransitionError if the request is not pending
func (r *DeliveryRequest) Accept(deliveryPersonID kernel.UUID, at time.Time) error {
	if err := deliveryPersonID.Validate(); err != nil {
		return err
	}

	if r.deliveryPersonID != nil {
		return errs.NewAlreadyAssignedError(r.id.String(), r.deliveryPersonID.String())
	}

	next, err := r.status.TransitionTo(StatusAccepted)
	if err != nil {
		return err
	}

	r.status = next
	r.deliveryPersonID = &deliveryPersonID
	r.touch(at)
	r.record(next, r.deliveryPersonID)
	return nil
}

// PickUp moves an accepted request to picked_up.
func (r *DeliveryRequest) PickUp(at time.Time) error {
	return r.advance(StatusPickedUp, at)
}

// StartTransit moves a picked-up request to in_transit.
func (r *DeliveryRequest) StartTransit(at time.Time) error {
	return r.advance(StatusInTransit, at)
}

// Deliver moves an in-transit request to the terminal delivered status.
func (r *DeliveryRequest) Deliver(at time.Time) error {
	return r.advance(StatusDelivered, at)
}

// Cancel moves a pending or accepted request to the terminal cancelled status.
// Any assignment is cleared; the recorded event still names the former assignee.
func (r *DeliveryRequest) Cancel(at time.Time) error {
	next, err := r.status.TransitionTo(StatusCancelled)
	if err != nil {
		return err
	}

	former := r.deliveryPersonID
	r.status = next
	r.deliveryPersonID = nil
	r.touch(at)
	r.record(next, former)
	return nil
}

// DomainEvents returns the events recorded since the request was created or loaded.
func (r *DeliveryRequest) DomainEvents() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// ClearDomainEvents drops the recorded events once they were handed over for publishing.
func (r *DeliveryRequest) ClearDomainEvents() {
	r.events = nil
}

func (r *DeliveryRequest) advance(target Status, at time.Time) error {
	next, err := r.status.TransitionTo(target)
	if err != nil {
		return err
	}

	r.status = next
	r.touch(at)
	r.record(next, r.deliveryPersonID)
	return nil
}

// touch keeps updatedAt monotonic even if the caller's clock goes backwards.
func (r *DeliveryRequest) touch(at time.Time) {
	at = at.UTC()
	if at.Before(r.updatedAt) {
		at = r.updatedAt
	}
	r.updatedAt = at
}

func (r *DeliveryRequest) record(status Status, deliveryPersonID *kernel.UUID) {
	kind, ok := EventKindFor(status)
	if !ok {
		return
	}

	var dp *kernel.UUID
	if deliveryPersonID != nil {
		id := *deliveryPersonID
		dp = &id
	}

	r.events = append(r.events, Event{
		Kind:             kind,
		RequestID:        r.id,
		UserID:           r.userID,
		DeliveryPersonID: dp,
		Status:           status.String(),
		Price:            r.price,
		OccurredAt:       r.updatedAt,
	})
}

func (r *DeliveryRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *DeliveryRequest) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("user id", err)
	}
	r.userID = userID
	return nil
}

func (r *DeliveryRequest) setPickup(pickup Endpoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	r.pickup = pickup
	return nil
}

func (r *DeliveryRequest) setDropoff(dropoff Endpoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	r.dropoff = dropoff
	return nil
}

func (r *DeliveryRequest) setParcel(parcel Parcel) error {
	if err := parcel.Validate(); err != nil {
		return err
	}
	r.parcel = parcel
	return nil
}

func (r *DeliveryRequest) setPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not greater than 0", price))
	}
	r.price = price
	return nil
}

func (r *DeliveryRequest) setEstimatedMinutes(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("estimated time", fmt.Errorf("%d is negative", minutes))
	}
	r.estimatedMinutes = minutes
	return nil
}
