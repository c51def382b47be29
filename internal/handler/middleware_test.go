package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/villa-93/mini-store/internal/domain"
	"github.com/villa-93/mini-store/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, identity domain.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockSessionStore) Destroy(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockOrderUseCase struct {
	mock.Mock
}

var _ usecase.OrderUseCase = (*MockOrderUseCase)(nil)

func (m *MockOrderUseCase) PlaceOrder(ctx context.Context, identity domain.Identity, shippingAddress, paymentMethod string) (int64, string, error) {
	args := m.Called(ctx, identity, shippingAddress, paymentMethod)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *MockOrderUseCase) ListOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderUseCase) OrderDetail(ctx context.Context, userID, orderID int64) ([]domain.OrderDetailRow, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderDetailRow), args.Error(1)
}

func TestRequireSessionNoCookie(t *testing.T) {
	sessions := new(MockSessionStore)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/carrito", nil)
	rec := httptest.NewRecorder()

	RequireSession(sessions, discardLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "no autorizado")
	assert.False(t, called, "downstream handler must not run without a session")
	sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRequireSessionUnknownSession(t *testing.T) {
	sessions := new(MockSessionStore)
	sessions.On("Get", mock.Anything, "stale-id").Return(nil, nil)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale-id"})
	rec := httptest.NewRecorder()

	RequireSession(sessions, discardLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireSessionAttachesIdentity(t *testing.T) {
	sessions := new(MockSessionStore)
	sessions.On("Get", mock.Anything, "live-id").Return(&domain.Identity{
		ID:    7,
		Name:  "Ana",
		Email: "ana@example.com",
		Role:  domain.RoleCustomer,
	}, nil)

	var got domain.Identity
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/perfil", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "live-id"})
	rec := httptest.NewRecorder()

	RequireSession(sessions, discardLogger())(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, domain.RoleCustomer, got.Role)
}

func TestPlaceOrderRequiresSession(t *testing.T) {
	sessions := new(MockSessionStore)
	orders := new(MockOrderUseCase)

	h := NewOrderHandler(orders, discardLogger())
	gated := RequireSession(sessions, discardLogger())(http.HandlerFunc(h.Place))

	body := strings.NewReader(`{"shippingAddress":"Calle 1","paymentMethod":"tarjeta"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/pedidos", body)
	rec := httptest.NewRecorder()

	gated.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
