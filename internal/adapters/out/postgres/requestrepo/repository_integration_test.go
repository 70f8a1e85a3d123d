package requestrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/requestrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/request"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// DeliveryRequestRepositoryIntegrationTestSuite runs the repository against a
// PostgreSQL container.
type DeliveryRequestRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *requestrepo.GormDeliveryRequestRepository
	tracker    *MockAggregateTracker
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&requestrepo.DeliveryRequestDTO{}))
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE delivery_requests").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = requestrepo.NewGormDeliveryRequestRepository(suite.db, suite.tracker)
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	r := suite.newRequest()

	suite.Require().NoError(suite.repository.Add(ctx, r))
	suite.Equal(1, r.Version())
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", r.ID(), r)

	got, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)

	suite.True(got.IsEqual(r))
	suite.Equal(r.UserID(), got.UserID())
	suite.Equal(request.StatusPending, got.Status())
	suite.Nil(got.DeliveryPersonID())
	suite.Equal("Calle 23 y 12", got.Pickup().Address())
	suite.Equal("Ana López", got.Dropoff().ContactName())
	suite.InDelta(23.1319, got.Pickup().Location().Lat(), 1e-9)
	suite.Equal("Documentos", got.Parcel().Description())
	suite.Require().NotNil(got.Parcel().DeclaredValue())
	suite.InDelta(50.0, *got.Parcel().DeclaredValue(), 1e-9)
	suite.InDelta(8.50, got.Price(), 1e-9)
	suite.Equal(25, got.EstimatedMinutes())
	suite.True(baseTime.Equal(got.CreatedAt()))
	suite.Equal(1, got.Version())
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestAdd_DuplicateID_ReturnsAlreadyExists() {
	ctx := context.Background()
	r := suite.newRequest()
	suite.Require().NoError(suite.repository.Add(ctx, r))

	err := suite.repository.Add(ctx, r)

	suite.Require().ErrorIs(err, errs.ErrAlreadyExists)
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestGet_Unknown_ReturnsNotFound() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestUpdate_TransitionsAndClearsAssignment() {
	ctx := context.Background()
	r := suite.newRequest()
	suite.Require().NoError(suite.repository.Add(ctx, r))

	driver := kernel.NewUUID()
	suite.Require().NoError(r.Accept(driver, baseTime.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, r))
	suite.Equal(2, r.Version())

	got, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(request.StatusAccepted, got.Status())
	suite.True(got.IsAssignedTo(driver))
	suite.True(baseTime.Add(time.Minute).Equal(got.UpdatedAt()))

	suite.Require().NoError(got.Cancel(baseTime.Add(2 * time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, got))

	cancelled, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(request.StatusCancelled, cancelled.Status())
	suite.Nil(cancelled.DeliveryPersonID())
	suite.Equal(3, cancelled.Version())
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionIsInvalid() {
	ctx := context.Background()
	r := suite.newRequest()
	suite.Require().NoError(suite.repository.Add(ctx, r))

	first, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Accept(kernel.NewUUID(), baseTime))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Accept(kernel.NewUUID(), baseTime))
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	got, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.True(got.IsAssignedTo(*first.DeliveryPersonID()))
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestUpdate_Unknown_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newRequest())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) TestList_InsertionOrder() {
	ctx := context.Background()
	added := make([]*request.DeliveryRequest, 0, 3)
	for range 3 {
		r := suite.newRequest()
		suite.Require().NoError(suite.repository.Add(ctx, r))
		added = append(added, r)
	}

	list, err := suite.repository.List(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(list, 3)
	for i := range added {
		suite.True(list[i].IsEqual(added[i]))
	}
}

func (suite *DeliveryRequestRepositoryIntegrationTestSuite) newRequest() *request.DeliveryRequest {
	loc, err := kernel.NewLocation(23.1319, -82.3841)
	suite.Require().NoError(err)
	pickup, err := request.NewEndpoint("pickup", "Calle 23 y 12", loc, "Juan Pérez", "+34 600 123 456")
	suite.Require().NoError(err)
	dropoff, err := request.NewEndpoint("dropoff", "Malecón 567", loc, "Ana López", "+34 600 987 654")
	suite.Require().NoError(err)
	declared := 50.0
	parcel, err := request.NewParcel("Documentos", &declared, "")
	suite.Require().NoError(err)

	r, err := request.NewDeliveryRequest(kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, parcel, 8.50, 25, baseTime)
	suite.Require().NoError(err)
	return r
}

func TestDeliveryRequestRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(DeliveryRequestRepositoryIntegrationTestSuite))
}
