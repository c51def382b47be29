package ports

import (
	"context"

	"github.com/villa-93/mini-store/internal/domain"
)

// UserStorage defines persistence for accounts and password reset tokens.
type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, id int64, name, passwordHash string) error

	CreateResetToken(ctx context.Context, token *domain.PasswordResetToken) error
	GetResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	// RedeemResetToken updates the user's password hash and marks the token
	// used in one transaction.
	RedeemResetToken(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error
}

// ProductStorage defines read access to the catalog plus the image update
// used by the admin upload endpoint.
type ProductStorage interface {
	ListAvailable(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	UpdateImage(ctx context.Context, id int64, imageURL string) error
}

// CartStorage defines persistence for cart rows.
type CartStorage interface {
	// AddItem inserts the (user, product) row or increments its quantity
	// when it already exists.
	AddItem(ctx context.Context, userID, productID int64, quantity int) error
	ListForUser(ctx context.Context, userID int64) ([]domain.CartLine, error)
	// UpdateQuantity and RemoveItem only touch rows owned by userID.
	UpdateQuantity(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
}

// OrderStorage defines persistence for orders, their line items and
// payment records.
type OrderStorage interface {
	// CreateOrder persists the order, its line items and its payment and
	// deletes the user's cart rows in a single transaction. On success the
	// generated order id is written back to order.ID.
	CreateOrder(ctx context.Context, order *domain.Order, items []domain.OrderLineItem, payment *domain.Payment) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	GetDetail(ctx context.Context, userID, orderID int64) ([]domain.OrderDetailRow, error)
}
