package services_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role, "Test "+role.String(), "", "")
	require.NoError(t, err)
	return a
}

func newRequest(t *testing.T, creator actor.Actor) *request.DeliveryRequest {
	t.Helper()
	loc, err := kernel.NewLocation(23.1319, -82.3841)
	require.NoError(t, err)
	pickup, err := request.NewEndpoint("pickup", "Calle 23 y 12", loc, "Juan Pérez", "+34 600 123 456")
	require.NoError(t, err)
	dropoff, err := request.NewEndpoint("dropoff", "Malecón 567", loc, "Ana López", "+34 600 987 654")
	require.NoError(t, err)
	parcel, err := request.NewParcel("Documentos importantes", nil, "")
	require.NoError(t, err)

	r, err := request.NewDeliveryRequest(kernel.NewUUID(), creator.ID(), pickup, dropoff, parcel, 8.50, 0, baseTime)
	require.NoError(t, err)
	return r
}

// requestIn builds a request and drives it to status using assignee for delivery steps.
func requestIn(t *testing.T, creator, assignee actor.Actor, status request.Status) *request.DeliveryRequest {
	t.Helper()
	r := newRequest(t, creator)

	path := map[request.Status][]request.Status{
		request.StatusPending:   {},
		request.StatusAccepted:  {request.StatusAccepted},
		request.StatusPickedUp:  {request.StatusAccepted, request.StatusPickedUp},
		request.StatusInTransit: {request.StatusAccepted, request.StatusPickedUp, request.StatusInTransit},
		request.StatusDelivered: {
			request.StatusAccepted, request.StatusPickedUp, request.StatusInTransit, request.StatusDelivered,
		},
		request.StatusCancelled: {request.StatusCancelled},
	}[status]

	for _, step := range path {
		switch step {
		case request.StatusAccepted:
			require.NoError(t, r.Accept(assignee.ID(), baseTime))
		case request.StatusPickedUp:
			require.NoError(t, r.PickUp(baseTime))
		case request.StatusInTransit:
			require.NoError(t, r.StartTransit(baseTime))
		case request.StatusDelivered:
			require.NoError(t, r.Deliver(baseTime))
		case request.StatusCancelled:
			require.NoError(t, r.Cancel(baseTime))
		}
	}
	return r
}

func newPerson(t *testing.T, available bool, lat, lng *float64, rating float64) *person.DeliveryPerson {
	t.Helper()
	var (
		loc *kernel.Location
		at  *time.Time
	)
	if lat != nil && lng != nil {
		l, err := kernel.NewLocation(*lat, *lng)
		require.NoError(t, err)
		loc = &l
		ts := baseTime
		at = &ts
	}

	p, err := person.RestoreDeliveryPerson(
		kernel.NewUUID(), kernel.NewUUID(), person.VehicleMotorcycle, "",
		available, loc, at, rating, 0, baseTime,
	)
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }
