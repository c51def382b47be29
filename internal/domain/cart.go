package domain

import (
	"github.com/shopspring/decimal"
)

// CartItem is one row of a user's cart, table 'cart_items'.
// Unique per (user_id, product_id): adding a product already present
// increments quantity instead of inserting a second row.
type CartItem struct {
	ID        int64 `json:"id" db:"id"`
	UserID    int64 `json:"user_id" db:"user_id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
}

// CartLine is a cart row joined with its product, as returned to the
// client and consumed by order placement. Price is the product's price
// at the moment of the query.
type CartLine struct {
	ID          int64           `json:"id" db:"id"`
	ProductID   int64           `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	ImageURL    string          `json:"image_url" db:"image_url"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
}

// Subtotal is quantity x current price.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the joined view of a user's cart with its running total.
type Cart struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// NewCart builds the cart view from joined rows. Items is never nil so an
// empty cart serializes as [] rather than null.
func NewCart(lines []CartLine) Cart {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	if lines == nil {
		lines = []CartLine{}
	}
	return Cart{Items: lines, Total: total}
}
