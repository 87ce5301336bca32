package commands_test

import (
	"context"
	"time"

	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/domain/model/rider"
	"brewride/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Accept(ctx context.Context, orderID, riderID kernel.UUID) error {
	args := m.Called(ctx, orderID, riderID)
	return args.Error(0)
}

func (m *MockOrderRepository) CompleteIfDelivered(ctx context.Context, orderID kernel.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePosition(ctx context.Context, orderID, riderID kernel.UUID, position kernel.GeoPoint) error {
	args := m.Called(ctx, orderID, riderID, position)
	return args.Error(0)
}

func (m *MockOrderRepository) GetActiveForRider(ctx context.Context, riderID kernel.UUID, since time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, riderID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetCompletedByRider(ctx context.Context, riderID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

type MockRiderStatsRepository struct{ mock.Mock }

func (m *MockRiderStatsRepository) Get(ctx context.Context, riderID kernel.UUID) (*rider.Stats, error) {
	args := m.Called(ctx, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Stats), args.Error(1)
}

func (m *MockRiderStatsRepository) Save(ctx context.Context, stats *rider.Stats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

type MockCompletedOrderRepository struct{ mock.Mock }

func (m *MockCompletedOrderRepository) Add(ctx context.Context, record order.CompletedOrder) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCompletedOrderRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (order.CompletedOrder, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(order.CompletedOrder), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) RiderStatsRepository() ports.RiderStatsRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderStatsRepository)
}

func (m *MockUoW) CompletedOrderRepository() ports.CompletedOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.CompletedOrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRiderUoWFactory struct{ mock.Mock }

func (m *MockRiderUoWFactory) Create() commands.RiderUoW {
	args := m.Called()
	return args.Get(0).(commands.RiderUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOrderChanged(ctx context.Context, event order.ChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockPositionCache struct{ mock.Mock }

func (m *MockPositionCache) SetPosition(ctx context.Context, orderID kernel.UUID, position kernel.GeoPoint) error {
	args := m.Called(ctx, orderID, position)
	return args.Error(0)
}

func (m *MockPositionCache) GetPosition(ctx context.Context, orderID kernel.UUID) (*kernel.GeoPoint, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kernel.GeoPoint), args.Error(1)
}

// Test fixtures shared across handler tests.

func testCustomer() order.Customer {
	customer, err := order.NewCustomer("Dana Reyes", "dana@example.com", "+15550001111", "12 Pine St", "Portland")
	if err != nil {
		panic(err)
	}
	return customer
}

func testPoint(lat, lng float64) kernel.GeoPoint {
	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		panic(err)
	}
	return point
}

func orderInStatus(customerID kernel.UUID, transitions ...func(*order.Order) error) *order.Order {
	aggregate, err := order.NewOrder(
		kernel.NewUUID(), customerID, testCustomer(), testPoint(45.52, -122.68),
		"Latte", 1, 4.50, 1.20, time.Now().UTC(),
	)
	if err != nil {
		panic(err)
	}

	for _, transition := range transitions {
		if err = transition(aggregate); err != nil {
			panic(err)
		}
	}
	return aggregate
}

func approvedRider(id kernel.UUID) *rider.Rider {
	aggregate, err := rider.NewRider(id, "Kai Chen", "+15550002222", "e-bike")
	if err != nil {
		panic(err)
	}
	if err = aggregate.Approve(); err != nil {
		panic(err)
	}
	return aggregate
}
