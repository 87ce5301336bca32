package archiverepo_test

import (
	"context"
	"testing"
	"time"

	"brewride/internal/adapters/out/postgres/archiverepo"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompletedOrderRepositoryIntegrationTestSuite verifies the archival table is
// append-only: one row per completed order, duplicates rejected by the schema.
type CompletedOrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *archiverepo.GormCompletedOrderRepository
}

func (suite *CompletedOrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&archiverepo.CompletedOrderDTO{}))
}

func (suite *CompletedOrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE completed_orders").Error)
	suite.repository = archiverepo.NewGormCompletedOrderRepository(suite.db)
}

func (suite *CompletedOrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CompletedOrderRepositoryIntegrationTestSuite) createTestRecord() order.CompletedOrder {
	record, err := order.NewCompletedOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Latte", 9.00, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return record
}

func (suite *CompletedOrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	record := suite.createTestRecord()

	suite.Require().NoError(suite.repository.Add(ctx, record))

	loaded, err := suite.repository.GetByOrderID(ctx, record.OrderID())
	suite.Require().NoError(err)
	suite.True(loaded.OrderID().IsEqual(record.OrderID()))
	suite.True(loaded.RiderID().IsEqual(record.RiderID()))
	suite.True(loaded.CustomerID().IsEqual(record.CustomerID()))
	suite.Equal("Latte", loaded.ItemName())
	suite.InDelta(9.00, loaded.TotalPrice(), 0.001)
	suite.WithinDuration(record.CompletedAt(), loaded.CompletedAt(), time.Millisecond)
}

func (suite *CompletedOrderRepositoryIntegrationTestSuite) TestGetByOrderID_NotFound() {
	_, err := suite.repository.GetByOrderID(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CompletedOrderRepositoryIntegrationTestSuite) TestAdd_DuplicateOrderIsRejected() {
	ctx := context.Background()
	record := suite.createTestRecord()

	suite.Require().NoError(suite.repository.Add(ctx, record))

	err := suite.repository.Add(ctx, record)
	suite.Require().Error(err, "archiving the same order twice must hit the primary key")
}

func TestCompletedOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CompletedOrderRepositoryIntegrationTestSuite))
}
