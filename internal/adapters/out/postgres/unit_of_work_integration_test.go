package postgres_test

import (
	"context"
	"testing"
	"time"

	"brewride/internal/adapters/out/postgres"
	"brewride/internal/adapters/out/postgres/archiverepo"
	"brewride/internal/adapters/out/postgres/orderrepo"
	"brewride/internal/adapters/out/postgres/riderrepo"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/ports"
	"brewride/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction semantics across the
// repositories a unit of work hands out: changes are atomic on commit and
// invisible after rollback.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&riderrepo.RiderDTO{},
		&riderrepo.StatsDTO{},
		&archiverepo.CompletedOrderDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, riders, rider_stats, completed_orders").Error,
	)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createApprovedOrder() *order.Order {
	customer, err := order.NewCustomer("Dana Reyes", "dana@example.com", "+15550001111", "12 Pine St", "Portland")
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(45.5231, -122.6765)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), customer, point,
		"Latte", 1, 4.50, 1.20, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.Approve())
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) createDeliveredOrder(riderID kernel.UUID) *order.Order {
	testOrder := suite.createApprovedOrder()
	suite.Require().NoError(testOrder.Accept(riderID))
	suite.Require().NoError(testOrder.MarkPickedUp(riderID))
	suite.Require().NoError(testOrder.MarkDelivered(riderID))
	return testOrder
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesChangesVisible() {
	ctx := context.Background()
	testOrder := suite.createDeliveredOrder(kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, loaded.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	testOrder := suite.createDeliveredOrder(kernel.NewUUID())

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCompletion_ArchiveAndStatusCommitTogether() {
	ctx := context.Background()
	riderID := kernel.NewUUID()
	testOrder := suite.createDeliveredOrder(riderID)

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, testOrder))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().CompleteIfDelivered(ctx, testOrder.ID()))
	suite.Require().NoError(testOrder.Complete(testOrder.CustomerID()))
	record, err := testOrder.CompletedRecord(time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CompletedOrderRepository().Add(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	check := suite.factory.Create()
	loaded, err := check.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, loaded.Status())

	archived, err := check.CompletedOrderRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(archived.RiderID().IsEqual(riderID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCompletion_RollbackLeavesNoArchiveRow() {
	ctx := context.Background()
	riderID := kernel.NewUUID()
	testOrder := suite.createDeliveredOrder(riderID)

	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, testOrder))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().CompleteIfDelivered(ctx, testOrder.ID()))
	suite.Require().NoError(testOrder.Complete(testOrder.CustomerID()))
	record, err := testOrder.CompletedRecord(time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CompletedOrderRepository().Add(ctx, record))
	suite.Require().NoError(uow.Rollback(ctx))

	check := suite.factory.Create()
	loaded, err := check.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, loaded.Status(), "status change must roll back with the archive row")

	_, err = check.CompletedOrderRepository().GetByOrderID(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestAccept_CommittedClaimBlocksSecondClaim() {
	ctx := context.Background()
	testOrder := suite.createApprovedOrder()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, testOrder))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.OrderRepository().Accept(ctx, testOrder.ID(), kernel.NewUUID()))
	suite.Require().NoError(first.Commit(ctx))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	err := second.OrderRepository().Accept(ctx, testOrder.ID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, ports.ErrStatusPreconditionFailed)
	suite.Require().NoError(second.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBeginFails() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
