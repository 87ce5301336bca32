package cmd

import (
	"log/slog"

	httpserver "brewride/internal/adapters/in/http"
	"brewride/internal/adapters/out/postgres"
	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/application/usecases/queries"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/services"
	"brewride/internal/core/ports"
	"brewride/internal/tracking"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. The optional
// collaborators (publisher, cache, planner) may be nil; handlers degrade to
// best-effort behavior without them.
type CompositionRoot struct {
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	cafeLocation kernel.GeoPoint
	publisher    ports.OrderEventPublisher
	cache        ports.PositionCache
	planner      ports.RoutePlanner
	hub          *tracking.Hub
	logger       *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.OrderEventPublisher,
	cache ports.PositionCache,
	planner ports.RoutePlanner,
	hub *tracking.Hub,
	logger *slog.Logger,
) (CompositionRoot, error) {
	cafeLocation, err := kernel.NewGeoPoint(config.CafeLat, config.CafeLng)
	if err != nil {
		return CompositionRoot{}, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return CompositionRoot{
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		cafeLocation: cafeLocation,
		publisher:    publisher,
		cache:        cache,
		planner:      planner,
		hub:          hub,
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f, services.NewFeeCalculator(), c.cafeLocation, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReviewOrderCommandHandler() commands.ReviewOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateRiderPositionCommandHandler() commands.UpdateRiderPositionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateRiderPositionCommandHandler(f, c.cache, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateRiderCommandHandler() commands.CreateRiderCommandHandler {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRiderCommandHandler(f)
}

func (c *CompositionRoot) CreateReviewRiderCommandHandler() commands.ReviewRiderCommandHandler {
	var f commands.RiderUoWFactory = FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewRiderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderStatsQueryHandler() queries.GetRiderStatsQueryHandler {
	return queries.NewGetRiderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB, c.cache, c.planner, c.logger)
}

// CreateOrderRepository returns a repository bound to the main connection,
// outside any transaction. Used by the polling job.
func (c *CompositionRoot) CreateOrderRepository() ports.OrderRepository {
	return c.uowFactory.Create().OrderRepository()
}

// CreateServerConfig assembles the full HTTP server configuration.
func (c *CompositionRoot) CreateServerConfig(adminKey string) httpserver.ServerConfig {
	return httpserver.ServerConfig{
		CreateOrderHandler:         c.CreateCreateOrderCommandHandler(),
		ReviewOrderHandler:         c.CreateReviewOrderCommandHandler(),
		CancelOrderHandler:         c.CreateCancelOrderCommandHandler(),
		AcceptOrderHandler:         c.CreateAcceptOrderCommandHandler(),
		AdvanceDeliveryHandler:     c.CreateAdvanceDeliveryCommandHandler(),
		CompleteOrderHandler:       c.CreateCompleteOrderCommandHandler(),
		UpdateRiderPositionHandler: c.CreateUpdateRiderPositionCommandHandler(),
		CreateRiderHandler:         c.CreateCreateRiderCommandHandler(),
		ReviewRiderHandler:         c.CreateReviewRiderCommandHandler(),
		GetPendingOrdersHandler:    c.CreateGetPendingOrdersQueryHandler(),
		GetActiveOrdersHandler:     c.CreateGetActiveOrdersQueryHandler(),
		GetRiderStatsHandler:       c.CreateGetRiderStatsQueryHandler(),
		TrackOrderHandler:          c.CreateTrackOrderQueryHandler(),
		Hub:                        c.hub,
		Geolocation:                tracking.NewHubGeolocation(c.hub, c.cache),
		AdminKey:                   adminKey,
	}
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
