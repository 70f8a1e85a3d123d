package memory_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func newLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

func newRequest(t *testing.T, userID kernel.UUID) *request.DeliveryRequest {
	t.Helper()
	loc := newLocation(t, 23.1319, -82.3841)
	pickup, err := request.NewEndpoint("pickup", "Calle 23 y 12", loc, "Juan Pérez", "+34 600 123 456")
	require.NoError(t, err)
	dropoff, err := request.NewEndpoint("dropoff", "Malecón 567", loc, "Ana López", "+34 600 987 654")
	require.NoError(t, err)
	declared := 50.0
	parcel, err := request.NewParcel("Documentos", &declared, "Frágil")
	require.NoError(t, err)

	r, err := request.NewDeliveryRequest(kernel.NewUUID(), userID, pickup, dropoff, parcel, 8.50, 25, baseTime)
	require.NoError(t, err)
	return r
}

func newPerson(t *testing.T, userID kernel.UUID) *person.DeliveryPerson {
	t.Helper()
	p, err := person.NewDeliveryPerson(kernel.NewUUID(), userID, person.VehicleBike, "B-123", baseTime)
	require.NoError(t, err)
	return p
}
