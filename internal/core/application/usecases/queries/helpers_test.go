package queries_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	requests ports.DeliveryRequestRepository
	persons  ports.DeliveryPersonRepository
}

func newFixture() fixture {
	uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
	return fixture{
		requests: uow.DeliveryRequestRepository(),
		persons:  uow.DeliveryPersonRepository(),
	}
}

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role, "Test "+role.String(), "", "")
	require.NoError(t, err)
	return a
}

func newLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

// addRequest stores a request created at createdAt and driven to status by assignee.
func (f fixture) addRequest(
	t *testing.T,
	creator, assignee actor.Actor,
	status request.Status,
	price float64,
	createdAt time.Time,
) *request.DeliveryRequest {
	t.Helper()
	loc := newLocation(t, 23.1319, -82.3841)
	pickup, err := request.NewEndpoint("pickup", "Calle 23 y 12", loc, "Juan Pérez", "+34 600 123 456")
	require.NoError(t, err)
	dropoff, err := request.NewEndpoint("dropoff", "Malecón 567", loc, "Ana López", "+34 600 987 654")
	require.NoError(t, err)
	parcel, err := request.NewParcel("Documentos", nil, "")
	require.NoError(t, err)

	r, err := request.NewDeliveryRequest(kernel.NewUUID(), creator.ID(), pickup, dropoff, parcel, price, 0, createdAt)
	require.NoError(t, err)

	path := map[request.Status][]request.Status{
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
			require.NoError(t, r.Accept(assignee.ID(), createdAt))
		case request.StatusPickedUp:
			require.NoError(t, r.PickUp(createdAt))
		case request.StatusInTransit:
			require.NoError(t, r.StartTransit(createdAt))
		case request.StatusDelivered:
			require.NoError(t, r.Deliver(createdAt))
		case request.StatusCancelled:
			require.NoError(t, r.Cancel(createdAt))
		}
	}

	require.NoError(t, f.requests.Add(t.Context(), r))
	return r
}

func (f fixture) addPerson(
	t *testing.T,
	owner actor.Actor,
	available bool,
	location *kernel.Location,
	rating float64,
) *person.DeliveryPerson {
	t.Helper()
	var reportedAt *time.Time
	if location != nil {
		ts := baseTime
		reportedAt = &ts
	}
	p, err := person.RestoreDeliveryPerson(
		kernel.NewUUID(), owner.ID(), person.VehicleMotorcycle, "",
		available, location, reportedAt, rating, 0, baseTime,
	)
	require.NoError(t, err)
	require.NoError(t, f.persons.Add(t.Context(), p))
	return p
}

func ids(rs []*request.DeliveryRequest) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

type MockRequestReader struct{ mock.Mock }

func (m *MockRequestReader) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.DeliveryRequest), args.Error(1)
}

func (m *MockRequestReader) List(ctx context.Context) ([]*request.DeliveryRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.DeliveryRequest), args.Error(1)
}
