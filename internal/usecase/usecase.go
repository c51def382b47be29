package usecase

import (
	"context"
	"io"

	"github.com/villa-93/mini-store/internal/domain"
)

// AuthUseCase covers registration, login/logout, session resolution and
// the password reset pair.
type AuthUseCase interface {
	// Register creates a customer account. Duplicate email returns
	// ErrEmailTaken.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Login verifies credentials and creates a session. Unknown email and
	// wrong password both return ErrInvalidCredentials, nothing
	// distinguishes them.
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)

	// Logout destroys the session.
	Logout(ctx context.Context, sessionID string) error

	// CurrentSession resolves a session id; missing or expired sessions
	// return (nil, nil).
	CurrentSession(ctx context.Context, sessionID string) (*domain.Identity, error)

	// RequestPasswordReset generates a one-hour reset token for the email's
	// owner. Unknown email returns ErrUserNotFound.
	RequestPasswordReset(ctx context.Context, email string) (string, error)

	// ResetPassword redeems a token: valid only when it exists, is unused
	// and not expired, otherwise ErrInvalidToken.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// CatalogUseCase reads the product catalog and handles the admin image
// upload.
type CatalogUseCase interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	// UploadProductImage stores the image and points the product at it.
	// Non-admin identities get ErrForbidden.
	UploadProductImage(ctx context.Context, identity domain.Identity, productID int64, reader io.Reader, contentType string) (string, error)
}

// CartUseCase manages the authenticated user's cart.
type CartUseCase interface {
	// AddItem rejects quantity <= 0 with ErrInvalidQuantity and merges
	// quantity into the existing (user, product) row when there is one.
	AddItem(ctx context.Context, userID, productID int64, quantity int) error
	GetCart(ctx context.Context, userID int64) (domain.Cart, error)
	UpdateItem(ctx context.Context, userID, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID int64) error
}

// OrderUseCase owns the order placement workflow and order reads.
type OrderUseCase interface {
	// PlaceOrder turns the user's cart into an order, its line items and an
	// approved payment, and clears the cart. Empty carts return
	// ErrCartEmpty without writing anything.
	PlaceOrder(ctx context.Context, identity domain.Identity, shippingAddress, paymentMethod string) (int64, string, error)
	ListOrders(ctx context.Context, userID int64) ([]domain.Order, error)
	OrderDetail(ctx context.Context, userID, orderID int64) ([]domain.OrderDetailRow, error)
}

// ProfileUseCase reads and updates the authenticated user's profile.
type ProfileUseCase interface {
	GetProfile(ctx context.Context, userID int64) (*domain.User, error)
	// UpdateProfile changes the display name and, when newPassword is not
	// empty, rehashes the password.
	UpdateProfile(ctx context.Context, userID int64, name, newPassword string) error
}
