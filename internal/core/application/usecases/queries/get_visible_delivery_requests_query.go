package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetVisibleDeliveryRequestsQueryIsNotConstructed = errors.New(
		"GetVisibleDeliveryRequestsQuery must be created via NewGetVisibleDeliveryRequestsQuery constructor",
	)
)

// GetVisibleDeliveryRequestsQuery lists the requests an actor may see, narrowed
// by a list bucket and optionally an exact status.
//
// Example:
//
//	query, _ := NewGetVisibleDeliveryRequestsQuery(driver, request.BucketActive, nil)
//	requests, err := handler.Handle(ctx, query)
type GetVisibleDeliveryRequestsQuery struct { //nolint:recvcheck //using for validation
	actor  actor.Actor
	bucket request.Bucket
	status *request.Status

	guard guard.ConstructorGuard
}

// NewGetVisibleDeliveryRequestsQuery creates the query. An empty bucket means
// all; status may be nil.
func NewGetVisibleDeliveryRequestsQuery(
	a actor.Actor,
	bucket request.Bucket,
	status *request.Status,
) (GetVisibleDeliveryRequestsQuery, error) {
	if err := a.Validate(); err != nil {
		return GetVisibleDeliveryRequestsQuery{}, err
	}
	bucket, err := request.ParseBucket(string(bucket))
	if err != nil {
		return GetVisibleDeliveryRequestsQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetVisibleDeliveryRequestsQuery{}, err
		}
		s := *status
		status = &s
	}

	return GetVisibleDeliveryRequestsQuery{
		actor:  a,
		bucket: bucket,
		status: status,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetVisibleDeliveryRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetVisibleDeliveryRequestsQueryIsNotConstructed)
}

func (q GetVisibleDeliveryRequestsQuery) Actor() actor.Actor {
	return q.actor
}

func (q GetVisibleDeliveryRequestsQuery) Bucket() request.Bucket {
	return q.bucket
}

// Status returns the exact status filter, nil when not set.
func (q GetVisibleDeliveryRequestsQuery) Status() *request.Status {
	if q.status == nil {
		return nil
	}
	s := *q.status
	return &s
}
