package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/in/ws"
	"marketplace/internal/adapters/out/fanout"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/memory"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/rabbitmq"
	"marketplace/internal/adapters/out/redis"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	index      ports.LocationIndex
	hub        *ws.Hub
	publisher  ports.EventPublisher
	closers    []func() error
}

// NewCompositionRoot connects the configured store, location index and event
// transport. Close releases whatever was opened, also after a failure here.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		hub:    ws.NewHub(logger),
	}
	c.closers = append(c.closers, func() error {
		c.hub.Close()
		return nil
	})

	if err := c.openStore(); err != nil {
		return c, err
	}
	if err := c.openLocationIndex(ctx); err != nil {
		return c, err
	}
	transport, err := c.openTransport()
	if err != nil {
		return c, err
	}
	c.publisher = fanout.NewEventPublisher(c.hub, transport)

	return c, nil
}

func (c *CompositionRoot) openStore() error {
	switch c.cfg.Store {
	case StorePostgres:
		db, err := gorm.Open(gormpostgres.Open(c.cfg.DSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)

		if err := postgres.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	default:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}

	c.logger.Info("Store ready", "store", c.cfg.Store)
	return nil
}

func (c *CompositionRoot) openLocationIndex(ctx context.Context) error {
	switch c.cfg.LocationIndex {
	case IndexRedis:
		rdb := goredis.NewClient(&goredis.Options{Addr: c.cfg.RedisAddr})
		c.closers = append(c.closers, rdb.Close)
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		c.index = redis.NewLocationIndex(rdb, redis.DefaultKey)
	default:
		c.index = memory.NewLocationIndex()
	}

	c.logger.Info("Location index ready", "index", c.cfg.LocationIndex)
	return nil
}

// openTransport returns nil when no external transport is configured; the
// fan-out publisher skips nil targets.
func (c *CompositionRoot) openTransport() (ports.EventPublisher, error) {
	switch c.cfg.NotifyTransport {
	case TransportKafka:
		p := kafka.NewEventPublisher(c.cfg.KafkaBrokers, c.cfg.KafkaTopic, c.logger)
		c.closers = append(c.closers, p.Close)
		c.logger.Info("Publishing events to kafka", "topic", c.cfg.KafkaTopic)
		return p, nil
	case TransportRabbitMQ:
		p, err := rabbitmq.Dial(c.cfg.RabbitMQURL, c.cfg.RabbitMQExchange)
		if err != nil {
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.closers = append(c.closers, p.Close)
		c.logger.Info("Publishing events to rabbitmq", "exchange", c.cfg.RabbitMQExchange)
		return p, nil
	default:
		return nil, nil
	}
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) requestUoWFactory() commands.RequestUoWFactory {
	return FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) personUoWFactory() commands.PersonUoWFactory {
	return FuncPersonUoWFactory(func() commands.PersonUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryRequestCommandHandler() commands.CreateDeliveryRequestCommandHandler {
	return commands.NewCreateDeliveryRequestCommandHandler(c.requestUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(c.requestUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptDeliveryCommandHandler() commands.AcceptDeliveryCommandHandler {
	transitions := c.CreateApplyTransitionCommandHandler()
	return commands.NewAcceptDeliveryCommandHandler(&transitions)
}

func (c *CompositionRoot) CreateRegisterDeliveryPersonCommandHandler() commands.RegisterDeliveryPersonCommandHandler {
	return commands.NewRegisterDeliveryPersonCommandHandler(c.personUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	return commands.NewSetAvailabilityCommandHandler(c.personUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.personUoWFactory(), c.index, c.logger)
}

func (c *CompositionRoot) CreateReleaseStaleDeliveryPersonsCommandHandler() commands.ReleaseStaleDeliveryPersonsCommandHandler {
	return commands.NewReleaseStaleDeliveryPersonsCommandHandler(c.personUoWFactory(), c.index, c.logger)
}

func (c *CompositionRoot) CreateGetVisibleDeliveryRequestsQueryHandler() queries.GetVisibleDeliveryRequestsQueryHandler {
	return queries.NewGetVisibleDeliveryRequestsQueryHandler(c.uowFactory.Create().DeliveryRequestRepository())
}

func (c *CompositionRoot) CreateGetDeliveryRequestQueryHandler() queries.GetDeliveryRequestQueryHandler {
	return queries.NewGetDeliveryRequestQueryHandler(c.uowFactory.Create().DeliveryRequestRepository())
}

func (c *CompositionRoot) CreateGetDeliveryPersonsQueryHandler() queries.GetDeliveryPersonsQueryHandler {
	return queries.NewGetDeliveryPersonsQueryHandler(c.uowFactory.Create().DeliveryPersonRepository())
}

func (c *CompositionRoot) CreateGetMyDeliveryPersonQueryHandler() queries.GetMyDeliveryPersonQueryHandler {
	return queries.NewGetMyDeliveryPersonQueryHandler(c.uowFactory.Create().DeliveryPersonRepository())
}

func (c *CompositionRoot) CreateGetAdminStatsQueryHandler() queries.GetAdminStatsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetAdminStatsQueryHandler(uow.DeliveryRequestRepository(), uow.DeliveryPersonRepository())
}

func (c *CompositionRoot) CreateGetNearbyDeliveryPersonsQueryHandler() queries.GetNearbyDeliveryPersonsQueryHandler {
	return queries.NewGetNearbyDeliveryPersonsQueryHandler(c.index, c.uowFactory.Create().DeliveryPersonRepository())
}

// CreateHTTPServer wires every use case into the echo adapter.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateDeliveryRequest:      c.CreateCreateDeliveryRequestCommandHandler(),
		ApplyTransition:            c.CreateApplyTransitionCommandHandler(),
		AcceptDelivery:             c.CreateAcceptDeliveryCommandHandler(),
		RegisterDeliveryPerson:     c.CreateRegisterDeliveryPersonCommandHandler(),
		SetAvailability:            c.CreateSetAvailabilityCommandHandler(),
		UpdateLocation:             c.CreateUpdateLocationCommandHandler(),
		GetVisibleDeliveryRequests: c.CreateGetVisibleDeliveryRequestsQueryHandler(),
		GetDeliveryRequest:         c.CreateGetDeliveryRequestQueryHandler(),
		GetDeliveryPersons:         c.CreateGetDeliveryPersonsQueryHandler(),
		GetMyDeliveryPerson:        c.CreateGetMyDeliveryPersonQueryHandler(),
		GetAdminStats:              c.CreateGetAdminStatsQueryHandler(),
		GetNearbyDeliveryPersons:   c.CreateGetNearbyDeliveryPersonsQueryHandler(),
	}, c.hub)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	releaseStale := c.CreateReleaseStaleDeliveryPersonsCommandHandler()
	return jobs.NewJobManager(&releaseStale, c.cfg.StaleSweepSchedule, c.cfg.StaleLocationAfter, c.logger)
}

type FuncRequestUoWFactory func() commands.RequestUoW

func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

type FuncPersonUoWFactory func() commands.PersonUoW

func (f FuncPersonUoWFactory) Create() commands.PersonUoW {
	return f()
}
