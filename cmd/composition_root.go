package cmd

import (
	"log/slog"

	"coffeeshop/internal/adapters/out/eventlog"
	"coffeeshop/internal/adapters/out/payment"
	"coffeeshop/internal/adapters/out/postgres/deliveryrepo"
	"coffeeshop/internal/adapters/out/postgres/orderrepo"
	"coffeeshop/internal/core/application/usecases/commands"
	"coffeeshop/internal/core/application/usecases/queries"
	"coffeeshop/internal/core/domain/services"
	"coffeeshop/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services, and use case handlers.
// Handler constructors validate their dependencies; since the root builds
// them from concrete adapters those errors are programming mistakes, so
// the Create helpers panic instead of returning errors.
type CompositionRoot struct {
	gormDB *gorm.DB
	logger *slog.Logger

	orders     ports.OrderRepository
	deliveries ports.DeliveryRepository
	publisher  ports.EventPublisher
	payments   ports.PaymentGateway
	engine     *services.DeliveryBatchEngine
	pricing    services.PricingStrategyFactory
}

// NewCompositionRoot builds the object graph over the given database.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	orders := orderrepo.NewGormOrderRepository(gormDB)
	deliveries := deliveryrepo.NewGormDeliveryRepository(gormDB, orders)

	engine, err := services.NewDeliveryBatchEngine(orders, deliveries, logger)
	if err != nil {
		panic(err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		logger:     logger,
		orders:     orders,
		deliveries: deliveries,
		publisher:  eventlog.NewPublisher(logger),
		payments:   payment.NewLoggingGateway(logger),
		engine:     engine,
		pricing:    services.NewPricingStrategyFactory(),
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	handler, err := commands.NewPlaceOrderCommandHandler(c.orders, c.payments, c.publisher, c.pricing)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateMarkOrderReadyCommandHandler() commands.MarkOrderReadyCommandHandler {
	handler, err := commands.NewMarkOrderReadyCommandHandler(c.orders, c.engine, c.publisher, c.logger)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	handler, err := commands.NewCompleteOrderCommandHandler(c.orders)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	handler, err := commands.NewCancelOrderCommandHandler(c.orders, c.payments, c.logger)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	handler, err := commands.NewUpdateOrderStatusCommandHandler(
		c.orders,
		c.CreateMarkOrderReadyCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
	)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateCreateDeliveryBatchCommandHandler() commands.CreateDeliveryBatchCommandHandler {
	handler, err := commands.NewCreateDeliveryBatchCommandHandler(c.orders, c.engine, c.publisher)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateAutoBatchOrdersCommandHandler() commands.AutoBatchOrdersCommandHandler {
	handler, err := commands.NewAutoBatchOrdersCommandHandler(c.engine, c.publisher)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateAssignRiderCommandHandler() commands.AssignRiderCommandHandler {
	handler, err := commands.NewAssignRiderCommandHandler(c.deliveries, c.publisher)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	handler, err := commands.NewUpdateDeliveryStatusCommandHandler(c.deliveries, c.publisher)
	if err != nil {
		panic(err)
	}
	return handler
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDeliveriesQueryHandler() queries.GetActiveDeliveriesQueryHandler {
	return queries.NewGetActiveDeliveriesQueryHandler(c.gormDB)
}
