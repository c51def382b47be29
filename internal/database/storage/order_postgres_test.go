package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/villa-93/mini-store/internal/domain"
)

func testOrderInput() (*domain.Order, []domain.OrderLineItem, *domain.Payment) {
	total := decimal.RequireFromString("25.50")

	order := &domain.Order{
		UserID:          9,
		Total:           total,
		ShippingAddress: "Calle 1",
		Status:          domain.OrderStatusPending,
		CreatedAt:       time.Now(),
	}
	items := []domain.OrderLineItem{
		{ProductID: 100, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00"), Subtotal: decimal.RequireFromString("20.00")},
		{ProductID: 200, Quantity: 1, UnitPrice: decimal.RequireFromString("5.50"), Subtotal: decimal.RequireFromString("5.50")},
	}
	payment := &domain.Payment{
		Method:    "tarjeta",
		Total:     total,
		Status:    domain.PaymentStatusApproved,
		Reference: "REF-abc",
	}
	return order, items, payment
}

// The order, its line items, the payment and the cart clear must all land
// inside one transaction, so the committed state never holds an order with
// a non-empty cart behind it.
func TestCreateOrderClearsCartInSameTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStorage(db, discardLogger())

	order, items, payment := testOrderInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(9), sqlmock.AnyArg(), "Calle 1", domain.OrderStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(int64(42), int64(100), 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(int64(42), int64(200), 1, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectQuery(`INSERT INTO payments`).
		WithArgs(int64(42), "tarjeta", sqlmock.AnyArg(), domain.PaymentStatusApproved, "REF-abc").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`DELETE FROM cart_items WHERE user_id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := s.CreateOrder(context.Background(), order, items, payment)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, int64(42), payment.OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failed line item insert rolls everything back; neither the payment nor
// the cart clear ever run and nothing is committed.
func TestCreateOrderRollsBackOnItemFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewOrderStorage(db, discardLogger())

	order, items, payment := testOrderInput()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO orders`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectExec(`INSERT INTO order_items`).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	err := s.CreateOrder(context.Background(), order, items, payment)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
