package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status values. Orders are created as pending; the rest of the
// lifecycle is managed outside this API.
const (
	OrderStatusPending = "pendiente"
)

// Payment status. There is no gateway: payments are recorded as approved
// unconditionally.
const (
	PaymentStatusApproved = "aprobado"
)

// Payment methods accepted by order placement.
var PaymentMethods = []string{"tarjeta", "paypal", "transferencia", "contraentrega"}

// ValidPaymentMethod reports whether m is one of PaymentMethods.
func ValidPaymentMethod(m string) bool {
	for _, v := range PaymentMethods {
		if v == m {
			return true
		}
	}
	return false
}

// Order represents a placed order, table 'orders'.
// Invariant: Total equals the sum of its line item subtotals and the
// total of its payment.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"user_id" db:"user_id"`
	Total           decimal.Decimal `json:"total" db:"total"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// OrderLineItem is one line of an order, table 'order_items'.
// UnitPrice is a snapshot taken at order time and never changes, even if
// the product price does.
type OrderLineItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal" db:"subtotal"`
}

// Payment is the simulated payment record for an order, table 'payments'.
type Payment struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"order_id" db:"order_id"`
	Method    string          `json:"method" db:"method"`
	Total     decimal.Decimal `json:"total" db:"total"`
	Status    string          `json:"status" db:"status"`
	Reference string          `json:"reference" db:"reference"`
}

// OrderDetailRow is one row of the joined order detail view
// (order + payment + line item + product name).
type OrderDetailRow struct {
	OrderID         int64           `json:"order_id" db:"order_id"`
	Total           decimal.Decimal `json:"total" db:"total"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	Method          string          `json:"method" db:"method"`
	Reference       string          `json:"reference" db:"reference"`
	PaymentStatus   string          `json:"payment_status" db:"payment_status"`
	ProductName     string          `json:"product_name" db:"product_name"`
	Quantity        int             `json:"quantity" db:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price" db:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
}
