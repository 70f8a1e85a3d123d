package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/person"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRequestRepository struct{ mock.Mock }

func (m *MockRequestRepository) Add(ctx context.Context, r *request.DeliveryRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Update(ctx context.Context, r *request.DeliveryRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.DeliveryRequest), args.Error(1)
}

func (m *MockRequestRepository) List(ctx context.Context) ([]*request.DeliveryRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.DeliveryRequest), args.Error(1)
}

type MockPersonRepository struct{ mock.Mock }

func (m *MockPersonRepository) Add(ctx context.Context, p *person.DeliveryPerson) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPersonRepository) Update(ctx context.Context, p *person.DeliveryPerson) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPersonRepository) Get(ctx context.Context, id kernel.UUID) (*person.DeliveryPerson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*person.DeliveryPerson), args.Error(1)
}

func (m *MockPersonRepository) GetByUserID(ctx context.Context, userID kernel.UUID) (*person.DeliveryPerson, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*person.DeliveryPerson), args.Error(1)
}

func (m *MockPersonRepository) List(ctx context.Context, availableOnly bool) ([]*person.DeliveryPerson, error) {
	args := m.Called(ctx, availableOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*person.DeliveryPerson), args.Error(1)
}

func (m *MockPersonRepository) UpdateLocation(
	ctx context.Context,
	id kernel.UUID,
	location kernel.Location,
	at time.Time,
) (bool, error) {
	args := m.Called(ctx, id, location, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockPersonRepository) ReleaseStale(ctx context.Context, id kernel.UUID, lastReport *time.Time) (bool, error) {
	args := m.Called(ctx, id, lastReport)
	return args.Bool(0), args.Error(1)
}

type MockRequestUoW struct{ mock.Mock }

func (m *MockRequestUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRequestUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRequestUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRequestUoW) DeliveryRequestRepository() ports.DeliveryRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRequestRepository)
}

func (m *MockRequestUoW) CollectEvents() []request.Event {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]request.Event)
}

type MockRequestUoWFactory struct{ mock.Mock }

func (m *MockRequestUoWFactory) Create() commands.RequestUoW {
	args := m.Called()
	return args.Get(0).(commands.RequestUoW)
}

type MockPersonUoW struct{ mock.Mock }

func (m *MockPersonUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPersonUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPersonUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPersonUoW) DeliveryPersonRepository() ports.DeliveryPersonRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryPersonRepository)
}

type MockPersonUoWFactory struct{ mock.Mock }

func (m *MockPersonUoWFactory) Create() commands.PersonUoW {
	args := m.Called()
	return args.Get(0).(commands.PersonUoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event request.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLocationIndex struct{ mock.Mock }

func (m *MockLocationIndex) Upsert(ctx context.Context, personID kernel.UUID, location kernel.Location) error {
	args := m.Called(ctx, personID, location)
	return args.Error(0)
}

func (m *MockLocationIndex) Remove(ctx context.Context, personID kernel.UUID) error {
	args := m.Called(ctx, personID)
	return args.Error(0)
}

func (m *MockLocationIndex) Nearby(
	ctx context.Context,
	origin kernel.Location,
	radiusKm float64,
	limit int,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, origin, radiusKm, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

// memoryRequestUoWFactory and memoryPersonUoWFactory narrow the in-memory
// factory the same way the composition root does.
type memoryRequestUoWFactory struct{ factory *memory.UnitOfWorkFactory }

func (f memoryRequestUoWFactory) Create() commands.RequestUoW { return f.factory.Create() }

type memoryPersonUoWFactory struct{ factory *memory.UnitOfWorkFactory }

func (f memoryPersonUoWFactory) Create() commands.PersonUoW { return f.factory.Create() }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
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

func newEndpoints(t *testing.T) (request.Endpoint, request.Endpoint) {
	t.Helper()
	pickup, err := request.NewEndpoint("pickup", "Calle 23 y 12", newLocation(t, 23.1319, -82.3841), "Juan Pérez", "+34 600 123 456")
	require.NoError(t, err)
	dropoff, err := request.NewEndpoint("dropoff", "Malecón 567", newLocation(t, 23.1450, -82.3600), "Ana López", "+34 600 987 654")
	require.NoError(t, err)
	return pickup, dropoff
}

func newParcel(t *testing.T) request.Parcel {
	t.Helper()
	parcel, err := request.NewParcel("Documentos importantes", nil, "")
	require.NoError(t, err)
	return parcel
}

func newPendingRequest(t *testing.T, creator actor.Actor) *request.DeliveryRequest {
	t.Helper()
	pickup, dropoff := newEndpoints(t)
	r, err := request.NewDeliveryRequest(kernel.NewUUID(), creator.ID(), pickup, dropoff, newParcel(t), 8.50, 0, time.Now())
	require.NoError(t, err)
	r.ClearDomainEvents()
	r.SetVersion(1)
	return r
}

func newProfile(t *testing.T, owner actor.Actor) *person.DeliveryPerson {
	t.Helper()
	p, err := person.NewDeliveryPerson(kernel.NewUUID(), owner.ID(), person.VehicleMotorcycle, "", time.Now())
	require.NoError(t, err)
	return p
}
