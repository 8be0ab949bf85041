package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"coffeeshop/internal/adapters/out/postgres/deliveryrepo"
	"coffeeshop/internal/adapters/out/postgres/orderrepo"
	"coffeeshop/internal/core/application/usecases/queries"
	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DeliveryRepositoryIntegrationTestSuite provides integration tests for
// GormDeliveryRepository using PostgreSQL containers. The order tables are
// migrated too because the repository loads wrapped orders through the
// order repository when restoring aggregates.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	orders     *orderrepo.GormOrderRepository
	repository *deliveryrepo.GormDeliveryRepository
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&deliveryrepo.DeliveryDTO{}, &deliveryrepo.DeliveryItemDTO{},
	))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE deliveries, delivery_items, orders, order_items").Error)
	suite.orders = orderrepo.NewGormOrderRepository(suite.db)
	suite.repository = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.orders)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestSave_NewDelivery_RoundTrips() {
	ctx := context.Background()

	ord := suite.createReadyOrder()
	original, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{ord})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, original))

	restored, err := suite.repository.FindByID(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.ID().IsEqual(restored.ID()))
	suite.Equal(delivery.StatusCreated, restored.Status())
	suite.Nil(restored.RiderInfo())
	suite.Nil(restored.PickupTime())
	suite.Nil(restored.DeliveryTime())

	items := restored.Items()
	suite.Require().Len(items, 1)
	suite.Equal(delivery.ItemReady, items[0].Status())
	suite.True(ord.ID().IsEqual(items[0].OrderID()))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestSave_PickedUpDelivery_KeepsRiderAndTimestamps() {
	ctx := context.Background()

	ord := suite.createReadyOrder()
	original, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{ord})
	suite.Require().NoError(err)

	rider, err := delivery.NewRiderInfo("rider-1", "Dana", "555-0100", "")
	suite.Require().NoError(err)
	suite.Require().NoError(original.AssignRider(rider))
	suite.Require().NoError(original.MarkAsPickedUp())
	suite.Require().NoError(suite.repository.Save(ctx, original))

	restored, err := suite.repository.FindByID(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(delivery.StatusPickedUp, restored.Status())
	suite.Require().NotNil(restored.RiderInfo())
	suite.Equal("Dana", restored.RiderInfo().RiderName())
	suite.Equal(delivery.DefaultVehicleType, restored.RiderInfo().VehicleType())
	suite.Require().NotNil(restored.PickupTime())
	suite.WithinDuration(*original.PickupTime(), *restored.PickupTime(), time.Second)

	items := restored.Items()
	suite.Require().Len(items, 1)
	suite.Equal(delivery.ItemPickedUp, items[0].Status())
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestSave_OrderHeldByAnotherDelivery_Rejects() {
	ctx := context.Background()

	shared := suite.createReadyOrder()
	first, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{shared})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, first))

	second, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{shared})
	suite.Require().NoError(err)

	err = suite.repository.Save(ctx, second)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Contains(err.Error(), "already belongs to another delivery")

	// The losing delivery must not be stored.
	exists, err := suite.repository.ExistsByID(ctx, second.ID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestFindByID_NonExistentDelivery_ReturnsNotFoundError() {
	ctx := context.Background()

	restored, err := suite.repository.FindByID(ctx, kernel.NewUUID())

	suite.Nil(restored)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestFindByOrderID_ResolvesOwningDelivery() {
	ctx := context.Background()

	ord := suite.createReadyOrder()
	d, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{ord})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, d))

	found, err := suite.repository.FindByOrderID(ctx, ord.ID())
	suite.Require().NoError(err)
	suite.True(d.ID().IsEqual(found.ID()))

	_, err = suite.repository.FindByOrderID(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestFindActiveDeliveries_SkipsCreatedAndTerminalRuns() {
	ctx := context.Background()

	created, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{suite.createReadyOrder()})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, created))

	assigned, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{suite.createReadyOrder()})
	suite.Require().NoError(err)
	rider, err := delivery.NewRiderInfo("rider-1", "Dana", "555-0100", "")
	suite.Require().NoError(err)
	suite.Require().NoError(assigned.AssignRider(rider))
	suite.Require().NoError(suite.repository.Save(ctx, assigned))

	active, err := suite.repository.FindActiveDeliveries(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(active, 1)
	suite.True(assigned.ID().IsEqual(active[0].ID()))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestFindByRiderID_FiltersByAssignedRider() {
	ctx := context.Background()

	d, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{suite.createReadyOrder()})
	suite.Require().NoError(err)
	rider, err := delivery.NewRiderInfo("rider-7", "Kim", "555-0101", "SCOOTER")
	suite.Require().NoError(err)
	suite.Require().NoError(d.AssignRider(rider))
	suite.Require().NoError(suite.repository.Save(ctx, d))

	found, err := suite.repository.FindByRiderID(ctx, "rider-7")
	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.True(d.ID().IsEqual(found[0].ID()))

	found, err = suite.repository.FindByRiderID(ctx, "rider-8")
	suite.Require().NoError(err)
	suite.Empty(found)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestDeleteByID_FreesTheOrderForRebatching() {
	ctx := context.Background()

	ord := suite.createReadyOrder()
	d, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{ord})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, d))

	deleted, err := suite.repository.DeleteByID(ctx, d.ID())
	suite.Require().NoError(err)
	suite.True(deleted)

	// The order can join a replacement delivery once its row is gone.
	replacement, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{ord})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, replacement))

	deleted, err = suite.repository.DeleteByID(ctx, d.ID())
	suite.Require().NoError(err)
	suite.False(deleted)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetActiveDeliveriesQuery_ReturnsAssignedRuns() {
	ctx := context.Background()

	created, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{suite.createReadyOrder()})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, created))

	assigned, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{suite.createReadyOrder()})
	suite.Require().NoError(err)
	rider, err := delivery.NewRiderInfo("rider-1", "Dana", "555-0100", "")
	suite.Require().NoError(err)
	suite.Require().NoError(assigned.AssignRider(rider))
	suite.Require().NoError(suite.repository.Save(ctx, assigned))

	handler := queries.NewGetActiveDeliveriesQueryHandler(suite.db)
	rows, err := handler.Handle(ctx, queries.NewGetActiveDeliveriesQuery())
	suite.Require().NoError(err)

	suite.Require().Len(rows, 1)
	suite.True(assigned.ID().IsEqual(rows[0].ID))
	suite.Equal(delivery.StatusAssigned.String(), rows[0].Status)
	suite.Require().NotNil(rows[0].RiderName)
	suite.Equal("Dana", *rows[0].RiderName)
	suite.Equal(1, rows[0].OrderCount)
	suite.Nil(rows[0].PickupTime)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetDeliveryQuery_ReturnsRunWithOrderIDs() {
	ctx := context.Background()

	ord := suite.createReadyOrder()
	d, err := delivery.NewDelivery(kernel.NewUUID(), []*order.Order{ord})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Save(ctx, d))

	handler := queries.NewGetDeliveryQueryHandler(suite.db)
	query, err := queries.NewGetDeliveryQuery(d.ID())
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(d.ID().IsEqual(resp.ID))
	suite.Equal(delivery.StatusCreated.String(), resp.Status)
	suite.Nil(resp.RiderID)
	suite.Nil(resp.PickupTime)
	suite.Require().Len(resp.OrderIDs, 1)
	suite.True(ord.ID().IsEqual(resp.OrderIDs[0]))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestGetDeliveryQuery_NonExistentDelivery_ReturnsNotFoundError() {
	ctx := context.Background()

	handler := queries.NewGetDeliveryQueryHandler(suite.db)
	query, err := queries.NewGetDeliveryQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)

	suite.Nil(resp)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

// createReadyOrder persists a READY delivery order for wrapping in a run.
func (suite *DeliveryRepositoryIntegrationTestSuite) createReadyOrder() *order.Order {
	price, err := kernel.NewMoneyFromFloat(4.50)
	suite.Require().NoError(err)
	latte, err := order.NewItem("Latte", 2, price)
	suite.Require().NoError(err)

	address, err := order.NewAddress("123 Main St", "Springfield", "62704", "USA")
	suite.Require().NoError(err)
	total, err := kernel.NewMoneyFromFloat(16.00)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	ord, err := order.RestoreOrder(kernel.NewUUID(), "Alice", order.TypeDelivery,
		[]order.Item{latte}, &address, order.Ready, &total, now, now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orders.Save(context.Background(), ord))
	return ord
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
