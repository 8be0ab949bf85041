package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"coffeeshop/internal/adapters/out/memory"
	"coffeeshop/internal/core/domain/events"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/domain/services"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPaymentGateway is a mock implementation of ports.PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) ProcessPayment(
	ctx context.Context, orderID kernel.UUID, amount kernel.Money,
) (bool, error) {
	args := m.Called(ctx, orderID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentGateway) RefundPayment(
	ctx context.Context, orderID kernel.UUID, amount kernel.Money,
) (bool, error) {
	args := m.Called(ctx, orderID, amount)
	return args.Bool(0), args.Error(1)
}

// recordingPublisher captures every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *recordingPublisher) Kinds() []string {
	kinds := make([]string, 0)
	for _, event := range p.Events() {
		kinds = append(kinds, event.Kind())
	}
	return kinds
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(
	t *testing.T, orders *memory.OrderStore, deliveries *memory.DeliveryStore,
) *services.DeliveryBatchEngine {
	t.Helper()

	engine, err := services.NewDeliveryBatchEngine(orders, deliveries, quietLogger())
	require.NoError(t, err)
	return engine
}

// storeOrder builds an order of the given type in the given status and
// saves it. Delivery orders get a fixed address so they batch together.
func storeOrder(
	t *testing.T, orders *memory.OrderStore, orderType order.Type, status order.Status,
) *order.Order {
	t.Helper()
	return storeOrderAt(t, orders, orderType, status, time.Now().UTC())
}

func storeOrderAt(
	t *testing.T, orders *memory.OrderStore,
	orderType order.Type, status order.Status, createdAt time.Time,
) *order.Order {
	t.Helper()

	price, err := kernel.NewMoneyFromFloat(4.50)
	require.NoError(t, err)
	item, err := order.NewItem("Latte", 2, price)
	require.NoError(t, err)

	var address *order.Address
	if orderType == order.TypeDelivery {
		a, err := order.NewAddress("123 Main St", "Springfield", "62704", "USA")
		require.NoError(t, err)
		address = &a
	}

	var total *kernel.Money
	if status != order.Created {
		amount, err := kernel.NewMoneyFromFloat(16.00)
		require.NoError(t, err)
		total = &amount
	}

	ord, err := order.RestoreOrder(kernel.NewUUID(), "Alice", orderType,
		[]order.Item{item}, address, status, total, createdAt, createdAt)
	require.NoError(t, err)
	require.NoError(t, orders.Save(t.Context(), ord))

	return ord
}
