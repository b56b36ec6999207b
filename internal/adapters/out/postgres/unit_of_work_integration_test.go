package postgres_test

import (
	"context"
	"testing"
	"time"

	"rentalorders/internal/adapters/out/postgres"
	"rentalorders/internal/adapters/out/postgres/jobrepo"
	"rentalorders/internal/adapters/out/postgres/logrepo"
	"rentalorders/internal/adapters/out/postgres/orderrepo"
	"rentalorders/internal/core/domain/model/order"
	"rentalorders/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that an order transition and its
// audit record commit or fail together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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
		&logrepo.OrderLogDTO{},
		&jobrepo.JobDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_logs, jobs RESTART IDENTITY").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_AppliesOrderAndAuditTogether() {
	ctx := context.Background()
	seeded := suite.seedPendingOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate, err := uow.OrderRepository().Get(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Cancel())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))

	record, err := aggregate.TransitionLog()
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderLogRepository().Add(ctx, record))
	suite.Require().NoError(uow.Commit(ctx))

	retrieved, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, retrieved.Status())

	records, err := logrepo.NewGormOrderLogRepository(suite.db).GetAllForOrder(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Require().Len(records, 1)
	suite.Equal(order.Pending, records[0].FromStatus())
	suite.Equal(order.Cancelled, records[0].ToStatus())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsBothWrites() {
	ctx := context.Background()
	seeded := suite.seedPendingOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	aggregate, err := uow.OrderRepository().Get(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.Cancel())
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))

	record, err := aggregate.TransitionLog()
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderLogRepository().Add(ctx, record))
	suite.Require().NoError(uow.Rollback(ctx))

	retrieved, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, retrieved.Status())

	records, err := logrepo.NewGormOrderLogRepository(suite.db).GetAllForOrder(ctx, seeded.ID())
	suite.Require().NoError(err)
	suite.Empty(records)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_ReturnsInvalidTransaction() {
	uow := suite.factory.Create()

	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
	suite.ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedPendingOrder() *order.Order {
	aggregate, err := order.NewOrder(7, 42,
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db).Add(context.Background(), aggregate))
	return aggregate
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
