package domain

import (
	"time"
)

// User roles. Registration always assigns RoleCustomer; RoleAdmin is
// granted manually in the database.
const (
	RoleCustomer = "cliente"
	RoleAdmin    = "admin"
)

// User represents a registered account, table 'users'.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Identity is the authenticated subset of User carried by a session and
// attached to the request context by the auth middleware.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Identity returns the session-sized view of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// PasswordResetToken is a single-use recovery token, table
// 'password_reset_tokens'. Used flips false->true exactly once.
type PasswordResetToken struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	Used      bool      `json:"used" db:"used"`
}

// Valid reports whether the token can still redeem a password reset.
func (t *PasswordResetToken) Valid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
