package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"brewride/internal/adapters/out/postgres/orderrepo"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/ports"
	"brewride/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify persistence behavior,
// in particular the conditional writes that resolve rider races.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	customer, err := order.NewCustomer("Dana Reyes", "dana@example.com", "+15550001111", "12 Pine St", "Portland")
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(45.5231, -122.6765)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), customer, point,
		"Latte", 2, 9.00, 1.20, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) addApprovedOrder() *order.Order {
	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(suite.repository.Add(context.Background(), testOrder))
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal("Latte", loaded.ItemName())
	suite.Equal(2, loaded.Quantity())
	suite.InDelta(9.00, loaded.TotalPrice(), 0.001)
	suite.InDelta(1.20, loaded.DeliveryFee(), 0.001)
	suite.Equal("dana@example.com", loaded.Customer().Email())
	suite.Nil(loaded.Rider())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusChange() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Approved, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAccept_ClaimsApprovedOrder() {
	ctx := context.Background()
	approved := suite.addApprovedOrder()
	riderID := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Accept(ctx, approved.ID(), riderID))

	loaded, err := suite.repository.Get(ctx, approved.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
	suite.Require().NotNil(loaded.Rider())
	suite.True(loaded.Rider().IsEqual(riderID))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAccept_PendingOrderFailsPrecondition() {
	ctx := context.Background()
	pending := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	err := suite.repository.Accept(ctx, pending.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, ports.ErrStatusPreconditionFailed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAccept_ConcurrentRiders_ExactlyOneWins() {
	ctx := context.Background()
	approved := suite.addApprovedOrder()

	const riders = 8
	results := make([]error, riders)
	riderIDs := make([]kernel.UUID, riders)

	var wg sync.WaitGroup
	for i := range riders {
		riderIDs[i] = kernel.NewUUID()
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = suite.repository.Accept(ctx, approved.ID(), riderIDs[slot])
		}(i)
	}
	wg.Wait()

	winners := 0
	winner := -1
	for i, err := range results {
		if err == nil {
			winners++
			winner = i
			continue
		}
		suite.Require().ErrorIs(err, ports.ErrStatusPreconditionFailed)
	}
	suite.Equal(1, winners, "exactly one rider must win the claim")

	loaded, err := suite.repository.Get(ctx, approved.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, loaded.Status())
	suite.Require().NotNil(loaded.Rider())
	suite.True(loaded.Rider().IsEqual(riderIDs[winner]), "the row must carry the winner's ID")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCompleteIfDelivered_IsIdempotent() {
	ctx := context.Background()
	riderID := kernel.NewUUID()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(testOrder.Accept(riderID))
	suite.Require().NoError(testOrder.MarkPickedUp(riderID))
	suite.Require().NoError(testOrder.MarkDelivered(riderID))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(suite.repository.CompleteIfDelivered(ctx, testOrder.ID()))

	// A duplicate confirmation finds the row already completed.
	err := suite.repository.CompleteIfDelivered(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, ports.ErrStatusPreconditionFailed)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePosition_WritesOnlyWhileEnRoute() {
	ctx := context.Background()
	accepted := suite.addApprovedOrder()
	riderID := kernel.NewUUID()
	suite.Require().NoError(suite.repository.Accept(ctx, accepted.ID(), riderID))

	position, err := kernel.NewGeoPoint(45.5300, -122.6800)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.UpdatePosition(ctx, accepted.ID(), riderID, position))

	loaded, err := suite.repository.Get(ctx, accepted.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.RiderPosition())
	suite.InDelta(45.5300, loaded.RiderPosition().Lat(), 0.0001)
	suite.Equal(order.Accepted, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePosition_WrongRiderFailsPrecondition() {
	ctx := context.Background()
	accepted := suite.addApprovedOrder()
	suite.Require().NoError(suite.repository.Accept(ctx, accepted.ID(), kernel.NewUUID()))

	position, err := kernel.NewGeoPoint(45.5300, -122.6800)
	suite.Require().NoError(err)

	err = suite.repository.UpdatePosition(ctx, accepted.ID(), kernel.NewUUID(), position)
	suite.Require().ErrorIs(err, ports.ErrStatusPreconditionFailed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePosition_DeliveredOrderStaysFrozen() {
	ctx := context.Background()
	riderID := kernel.NewUUID()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.Approve())
	suite.Require().NoError(testOrder.Accept(riderID))
	suite.Require().NoError(testOrder.MarkPickedUp(riderID))
	suite.Require().NoError(testOrder.MarkDelivered(riderID))
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// A report delayed past delivery must not land on the frozen row.
	position, err := kernel.NewGeoPoint(45.5300, -122.6800)
	suite.Require().NoError(err)

	err = suite.repository.UpdatePosition(ctx, testOrder.ID(), riderID, position)
	suite.Require().ErrorIs(err, ports.ErrStatusPreconditionFailed)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Nil(loaded.RiderPosition())
	suite.Equal(order.Delivered, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveForRider_WindowAndOwnership() {
	ctx := context.Background()
	riderID := kernel.NewUUID()
	otherRider := kernel.NewUUID()

	unclaimed := suite.addApprovedOrder()

	mine := suite.createTestOrder()
	suite.Require().NoError(mine.Approve())
	suite.Require().NoError(mine.Accept(riderID))
	suite.Require().NoError(suite.repository.Add(ctx, mine))

	theirs := suite.createTestOrder()
	suite.Require().NoError(theirs.Approve())
	suite.Require().NoError(theirs.Accept(otherRider))
	suite.Require().NoError(suite.repository.Add(ctx, theirs))

	stillPending := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, stillPending))

	active, err := suite.repository.GetActiveForRider(ctx, riderID, time.Now().UTC().Add(-3*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(active, 2)

	ids := map[string]bool{}
	for _, o := range active {
		ids[o.ID().String()] = true
	}
	suite.True(ids[unclaimed.ID().String()], "approved unclaimed orders are visible to every rider")
	suite.True(ids[mine.ID().String()], "the rider's own claims are visible")
	suite.False(ids[theirs.ID().String()], "another rider's claims are hidden")
	suite.False(ids[stillPending.ID().String()], "pending orders are not offered to riders")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetActiveForRider_StaleOrdersAgeOut() {
	ctx := context.Background()
	stale := suite.addApprovedOrder()

	// Push the row's creation time outside the window.
	err := suite.db.Exec("UPDATE orders SET created_at = ? WHERE id = ?",
		time.Now().UTC().Add(-4*time.Hour), stale.ID().Bytes()).Error
	suite.Require().NoError(err)

	active, err := suite.repository.GetActiveForRider(ctx, kernel.NewUUID(), time.Now().UTC().Add(-3*time.Hour))
	suite.Require().NoError(err)
	suite.Empty(active)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetCompletedByRider() {
	ctx := context.Background()
	riderID := kernel.NewUUID()

	completed := suite.createTestOrder()
	suite.Require().NoError(completed.Approve())
	suite.Require().NoError(completed.Accept(riderID))
	suite.Require().NoError(completed.MarkPickedUp(riderID))
	suite.Require().NoError(completed.MarkDelivered(riderID))
	suite.Require().NoError(completed.Complete(completed.CustomerID()))
	suite.Require().NoError(suite.repository.Add(ctx, completed))

	inFlight := suite.addApprovedOrder()
	_ = inFlight

	records, err := suite.repository.GetCompletedByRider(ctx, riderID)
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.True(records[0].IsEqual(completed))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
