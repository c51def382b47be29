package domain

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog item, table 'products'.
// Read-only for customers; only the image can change through the API
// (admin upload), the rest is managed directly in the database.
type Product struct {
	ID       int64           `json:"id" db:"id"`
	Name     string          `json:"name" db:"name"`
	Price    decimal.Decimal `json:"price" db:"price"`
	Stock    int             `json:"stock" db:"stock"`
	ImageURL string          `json:"image_url" db:"image_url"`
}

func (Product) TableName() string {
	return "products"
}
