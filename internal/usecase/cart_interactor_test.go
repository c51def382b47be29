package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/villa-93/mini-store/internal/domain"
)

type MockProductStorage struct {
	mock.Mock
}

func (m *MockProductStorage) ListAvailable(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductStorage) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorage) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	carts := new(MockCartStorage)
	products := new(MockProductStorage)

	uc := NewCartUseCase(carts, products, discardLogger())

	assert.ErrorIs(t, uc.AddItem(context.Background(), 7, 100, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, uc.AddItem(context.Background(), 7, 100, -3), ErrInvalidQuantity)

	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItemUnknownProduct(t *testing.T) {
	carts := new(MockCartStorage)
	products := new(MockProductStorage)

	products.On("GetByID", mock.Anything, int64(100)).Return(nil, nil)

	uc := NewCartUseCase(carts, products, discardLogger())
	err := uc.AddItem(context.Background(), 7, 100, 2)

	assert.ErrorIs(t, err, ErrProductNotFound)
	carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAddItemDelegatesToStorage(t *testing.T) {
	carts := new(MockCartStorage)
	products := new(MockProductStorage)

	products.On("GetByID", mock.Anything, int64(100)).Return(&domain.Product{ID: 100}, nil)
	carts.On("AddItem", mock.Anything, int64(7), int64(100), 2).Return(nil)

	uc := NewCartUseCase(carts, products, discardLogger())
	assert.NoError(t, uc.AddItem(context.Background(), 7, 100, 2))

	carts.AssertExpectations(t)
}

func TestGetCartComputesTotal(t *testing.T) {
	carts := new(MockCartStorage)
	products := new(MockProductStorage)

	carts.On("ListForUser", mock.Anything, int64(7)).Return([]domain.CartLine{
		{ID: 1, ProductID: 100, Price: price("10.00"), Quantity: 2},
		{ID: 2, ProductID: 200, Price: price("5.50"), Quantity: 1},
	}, nil)

	uc := NewCartUseCase(carts, products, discardLogger())
	cart, err := uc.GetCart(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, cart.Items, 2)
	assert.True(t, cart.Total.Equal(price("25.50")), "total = %s", cart.Total)
	assert.True(t, cart.Items[0].Subtotal().Equal(price("20.00")))
}

func TestGetCartEmptySerializesToArray(t *testing.T) {
	carts := new(MockCartStorage)
	products := new(MockProductStorage)

	carts.On("ListForUser", mock.Anything, int64(7)).Return(nil, nil)

	uc := NewCartUseCase(carts, products, discardLogger())
	cart, err := uc.GetCart(context.Background(), 7)

	assert.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.True(t, cart.Total.IsZero())

	body, err := json.Marshal(cart)
	assert.NoError(t, err)
	assert.Contains(t, string(body), `"items":[]`)
}

func TestUpdateItemRejectsNonPositiveQuantity(t *testing.T) {
	carts := new(MockCartStorage)
	products := new(MockProductStorage)

	uc := NewCartUseCase(carts, products, discardLogger())

	assert.ErrorIs(t, uc.UpdateItem(context.Background(), 7, 1, 0), ErrInvalidQuantity)
	carts.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
