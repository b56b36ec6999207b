package cmd

import (
	"fmt"
	"log/slog"
	"time"

	httpin "rentalorders/internal/adapters/in/http"
	"rentalorders/internal/adapters/out/kafka"
	"rentalorders/internal/adapters/out/memstore"
	"rentalorders/internal/adapters/out/postgres"
	"rentalorders/internal/adapters/out/postgres/jobrepo"
	"rentalorders/internal/adapters/out/postgres/logrepo"
	"rentalorders/internal/adapters/out/postgres/orderrepo"
	"rentalorders/internal/core/application/usecases/commands"
	"rentalorders/internal/core/application/usecases/queries"
	"rentalorders/internal/core/ports"
	"rentalorders/internal/jobs"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// pendingJobThreshold is how long a job may sit in pending status before the
// reconciliation sweep treats it as orphaned and re-dispatches it.
const pendingJobThreshold = time.Minute

// CompositionRoot wires adapters, use cases, and background machinery from
// the runtime configuration. Storage and event publishing are selected here:
// postgres and kafka when configured, in-memory store and a no-op publisher
// otherwise.
type CompositionRoot struct {
	configs Config
	logger  *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	orders     ports.OrderRepository
	orderLogs  ports.OrderLogRepository
	jobsRepo   ports.JobRepository
	publisher  ports.OrderEventPublisher

	dispatcher *jobs.ConfirmationDispatcher
	jobManager *jobs.JobManager
}

// NewCompositionRoot builds the object graph for the given configuration.
func NewCompositionRoot(configs Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		configs: configs,
		logger:  logger,
	}

	if configs.DBHost == "" {
		store := memstore.NewStore()
		root.uowFactory = memstore.NewUnitOfWorkFactory(store)
		root.orders = store.OrderRepository()
		root.orderLogs = store.OrderLogRepository()
		root.jobsRepo = store.JobRepository()
		logger.Info("storage configured", "adapter", "memstore")
	} else {
		db, err := gorm.Open(gormpostgres.Open(configs.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		root.orders = orderrepo.NewGormOrderRepository(db)
		root.orderLogs = logrepo.NewGormOrderLogRepository(db)
		root.jobsRepo = jobrepo.NewGormJobRepository(db)
		logger.Info("storage configured", "adapter", "postgres", "host", configs.DBHost)
	}

	if configs.KafkaHost == "" {
		root.publisher = kafka.NewNopPublisher()
		logger.Info("event publishing disabled")
	} else {
		root.publisher = kafka.NewOrderChangedPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic)
		logger.Info("event publishing configured",
			"host", configs.KafkaHost, "topic", configs.KafkaOrderChangedTopic)
	}

	processHandler := commands.NewProcessConfirmationCommandHandler(
		root.uoWFactory(), root.publisher, logger)
	root.dispatcher = jobs.NewConfirmationDispatcher(processHandler, configs.ConfirmWorkers, logger)
	sweep := jobs.NewPendingJobsSweepJob(root.jobsRepo, root.dispatcher, pendingJobThreshold, logger)
	root.jobManager = jobs.NewJobManager(root.dispatcher, sweep)

	return root, nil
}

// JobManager exposes the background machinery for lifecycle control.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	return c.jobManager
}

// Close releases outbound resources.
func (c *CompositionRoot) Close() {
	if err := c.publisher.Close(); err != nil {
		c.logger.Error("failed to close event publisher", "error", err)
	}
}

// NewHTTPServer builds the HTTP surface over the wired use cases.
func (c *CompositionRoot) NewHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateGetOrderLogsQueryHandler(),
		c.CreateGetJobQueryHandler(),
	)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.uoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetOrderLogsQueryHandler() queries.GetOrderLogsQueryHandler {
	return queries.NewGetOrderLogsQueryHandler(c.orders, c.orderLogs)
}

func (c *CompositionRoot) CreateGetJobQueryHandler() queries.GetJobQueryHandler {
	return queries.NewGetJobQueryHandler(c.jobsRepo)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
