package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "brewride/internal/adapters/in/http"
	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/domain/model/rider"
	"brewride/internal/core/domain/services"
	"brewride/internal/core/ports"
	"brewride/internal/tracking"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAdminKey = "test-admin-key"

// MockOrderRepository is a mock implementation of ports.OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
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

// MockRiderRepository is a mock implementation of ports.RiderRepository.
type MockRiderRepository struct {
	mock.Mock
}

func (m *MockRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

// MockUoW is a mock unit of work serving the command factory interfaces.
type MockUoW struct {
	mock.Mock
	orders *MockOrderRepository
	riders *MockRiderRepository
}

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
	return m.orders
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	return m.riders
}

func (m *MockUoW) RiderStatsRepository() ports.RiderStatsRepository {
	return nil
}

func (m *MockUoW) CompletedOrderRepository() ports.CompletedOrderRepository {
	return nil
}

type orderUoWFactory struct{ uow *MockUoW }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.uow }

type uowFactory struct{ uow *MockUoW }

func (f uowFactory) Create() commands.UoW { return f.uow }

func newRelaxedUoW() *MockUoW {
	uow := &MockUoW{
		orders: new(MockOrderRepository),
		riders: new(MockRiderRepository),
	}
	uow.On("Begin", mock.Anything).Return(nil).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

func cafeLocation(t *testing.T) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(45.5152, -122.6784)
	require.NoError(t, err)
	return point
}

func newTestServer(t *testing.T, uow *MockUoW) *httpserver.Server {
	t.Helper()
	return httpserver.NewServer(httpserver.ServerConfig{
		CreateOrderHandler: commands.NewCreateOrderCommandHandler(
			orderUoWFactory{uow}, services.NewFeeCalculator(), cafeLocation(t), nil, nil),
		ReviewOrderHandler: commands.NewReviewOrderCommandHandler(orderUoWFactory{uow}, nil, nil),
		AcceptOrderHandler: commands.NewAcceptOrderCommandHandler(uowFactory{uow}, nil, nil),
		Hub:                tracking.NewHub(),
		AdminKey:           testAdminKey,
	})
}

func performRequest(server *httpserver.Server, req *nethttp.Request) *httptest.ResponseRecorder {
	e := echo.New()
	server.RegisterRoutes(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func validCreateOrderBody() string {
	return `{
		"customer_name": "Dana Reyes",
		"customer_email": "dana@example.com",
		"customer_phone": "+15550001111",
		"customer_address": "12 Pine St",
		"customer_city": "Portland",
		"delivery_lat": 45.5231,
		"delivery_lng": -122.6765,
		"item_name": "Latte",
		"quantity": 2,
		"total_price": 9.00
	}`
}

func TestServer_CreateOrder(t *testing.T) {
	t.Run("places an order and returns its ID", func(t *testing.T) {
		uow := newRelaxedUoW()
		uow.orders.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
		server := newTestServer(t, uow)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/orders", strings.NewReader(validCreateOrderBody()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpserver.HeaderCustomerID, kernel.NewUUID().String())

		rec := performRequest(server, req)

		require.Equal(t, nethttp.StatusCreated, rec.Code)
		var response httpserver.CreateOrderResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		_, err := kernel.UUIDFromString(response.OrderID)
		assert.NoError(t, err)
		uow.orders.AssertExpectations(t)
	})

	t.Run("missing customer header is unauthorized", func(t *testing.T) {
		server := newTestServer(t, newRelaxedUoW())

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/orders", strings.NewReader(validCreateOrderBody()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid order data is a bad request", func(t *testing.T) {
		server := newTestServer(t, newRelaxedUoW())

		body := strings.Replace(validCreateOrderBody(), `"quantity": 2`, `"quantity": 0`, 1)
		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/orders", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpserver.HeaderCustomerID, kernel.NewUUID().String())

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

func TestServer_AcceptOrder(t *testing.T) {
	approvedRider := func(t *testing.T, id kernel.UUID) *rider.Rider {
		t.Helper()
		claimant, err := rider.NewRider(id, "Kai Chen", "+15550002222", "e-bike")
		require.NoError(t, err)
		require.NoError(t, claimant.Approve())
		return claimant
	}

	t.Run("claim succeeds", func(t *testing.T) {
		riderID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		uow := newRelaxedUoW()
		uow.riders.On("Get", mock.Anything, riderID).Return(approvedRider(t, riderID), nil).Once()
		uow.orders.On("Accept", mock.Anything, orderID, riderID).Return(nil).Once()
		uow.orders.On("Get", mock.Anything, orderID).Return(nil, nil).Maybe()
		server := newTestServer(t, uow)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/rider/orders/"+orderID.String()+"/accept", nil)
		req.Header.Set(httpserver.HeaderRiderID, riderID.String())

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusNoContent, rec.Code)
	})

	t.Run("losing the claim race maps to conflict", func(t *testing.T) {
		riderID := kernel.NewUUID()
		orderID := kernel.NewUUID()

		uow := newRelaxedUoW()
		uow.riders.On("Get", mock.Anything, riderID).Return(approvedRider(t, riderID), nil).Once()
		uow.orders.On("Accept", mock.Anything, orderID, riderID).
			Return(ports.ErrStatusPreconditionFailed).Once()
		server := newTestServer(t, uow)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/rider/orders/"+orderID.String()+"/accept", nil)
		req.Header.Set(httpserver.HeaderRiderID, riderID.String())

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusConflict, rec.Code)
	})

	t.Run("unapproved rider is forbidden", func(t *testing.T) {
		riderID := kernel.NewUUID()
		orderID := kernel.NewUUID()
		pendingRider, err := rider.NewRider(riderID, "Kai Chen", "+15550002222", "e-bike")
		require.NoError(t, err)

		uow := newRelaxedUoW()
		uow.riders.On("Get", mock.Anything, riderID).Return(pendingRider, nil).Once()
		server := newTestServer(t, uow)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/rider/orders/"+orderID.String()+"/accept", nil)
		req.Header.Set(httpserver.HeaderRiderID, riderID.String())

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusForbidden, rec.Code)
	})

	t.Run("malformed order ID is a bad request", func(t *testing.T) {
		server := newTestServer(t, newRelaxedUoW())

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/rider/orders/not-a-uuid/accept", nil)
		req.Header.Set(httpserver.HeaderRiderID, kernel.NewUUID().String())

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	})
}

func TestServer_AdminGuard(t *testing.T) {
	t.Run("missing admin key is unauthorized", func(t *testing.T) {
		server := newTestServer(t, newRelaxedUoW())

		req := httptest.NewRequest(nethttp.MethodGet, "/api/v1/admin/orders/pending", nil)

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong admin key is unauthorized", func(t *testing.T) {
		server := newTestServer(t, newRelaxedUoW())

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/admin/orders/"+kernel.NewUUID().String()+"/review",
			strings.NewReader(`{"approve": true}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpserver.HeaderAdminKey, "wrong-key")

		rec := performRequest(server, req)

		assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
	})

	t.Run("valid admin key reviews an order", func(t *testing.T) {
		customer, err := order.NewCustomer("Dana Reyes", "dana@example.com", "+15550001111", "12 Pine St", "Portland")
		require.NoError(t, err)
		point, err := kernel.NewGeoPoint(45.5231, -122.6765)
		require.NoError(t, err)
		pending, err := order.NewOrder(
			kernel.NewUUID(), kernel.NewUUID(), customer, point,
			"Latte", 1, 4.50, 1.20, time.Now().UTC(),
		)
		require.NoError(t, err)

		uow := newRelaxedUoW()
		uow.orders.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once()
		uow.orders.On("Update", mock.Anything, pending).Return(nil).Once()
		server := newTestServer(t, uow)

		req := httptest.NewRequest(nethttp.MethodPost, "/api/v1/admin/orders/"+pending.ID().String()+"/review",
			strings.NewReader(`{"approve": true}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set(httpserver.HeaderAdminKey, testAdminKey)

		rec := performRequest(server, req)

		require.Equal(t, nethttp.StatusNoContent, rec.Code)
		assert.Equal(t, order.Approved, pending.Status())
	})
}
