package ports

import (
	"context"

	"github.com/villa-93/mini-store/internal/domain"
)

// SessionStore associates opaque session ids with authenticated
// identities. Records expire on their own after the store's fixed TTL.
type SessionStore interface {
	// Create stores the identity under a fresh session id and returns it.
	Create(ctx context.Context, identity domain.Identity) (string, error)

	// Get resolves a session id. A missing or expired session returns
	// (nil, nil).
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)

	// Destroy removes the session. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, sessionID string) error
}

// PasswordHasher is the one-way hash/verify capability used for account
// passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}
