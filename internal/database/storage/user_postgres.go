package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/villa-93/mini-store/internal/domain"
)

// UserStorage persists accounts and password reset tokens with sqlx.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// GetUserByEmail looks a user up by email. Missing users return (nil, nil).
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1 LIMIT 1`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get user by email", "error", err)
		return nil, fmt.Errorf("selecting user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID looks a user up by id. Missing users return (nil, nil).
func (s *UserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("selecting user by id: %w", err)
	}
	return &user, nil
}

// CreateUser inserts a new account and writes the generated id back.
func (s *UserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	start := time.Now()

	err := s.db.QueryRowxContext(ctx, `
        INSERT INTO users (name, email, password_hash, role, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt).Scan(&user.ID)
	if err != nil {
		s.logger.Error("failed to insert user", "email", user.Email, "error", err)
		return fmt.Errorf("inserting user: %w", err)
	}

	s.logger.Info("user created",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateUser updates the display name and, when passwordHash is not empty,
// the password hash.
func (s *UserStorage) UpdateUser(ctx context.Context, id int64, name, passwordHash string) error {
	var err error
	if passwordHash != "" {
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET name = $1, password_hash = $2 WHERE id = $3`,
			name, passwordHash, id)
	} else {
		_, err = s.db.ExecContext(ctx,
			`UPDATE users SET name = $1 WHERE id = $2`,
			name, id)
	}
	if err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return nil
}

// CreateResetToken inserts a password reset token.
func (s *UserStorage) CreateResetToken(ctx context.Context, token *domain.PasswordResetToken) error {
	err := s.db.QueryRowxContext(ctx, `
        INSERT INTO password_reset_tokens (user_id, token, expires_at, used)
        VALUES ($1, $2, $3, FALSE)
        RETURNING id
    `, token.UserID, token.Token, token.ExpiresAt).Scan(&token.ID)
	if err != nil {
		s.logger.Error("failed to insert reset token", "user_id", token.UserID, "error", err)
		return fmt.Errorf("inserting reset token: %w", err)
	}

	s.logger.Info("reset token created", "user_id", token.UserID)
	return nil
}

// GetResetToken fetches a reset token by its value. Missing tokens return
// (nil, nil).
func (s *UserStorage) GetResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := s.db.GetContext(ctx, &t,
		`SELECT * FROM password_reset_tokens WHERE token = $1 LIMIT 1`, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.Error("failed to get reset token", "error", err)
		return nil, fmt.Errorf("selecting reset token: %w", err)
	}
	return &t, nil
}

// RedeemResetToken updates the user's password and marks the token used in
// one transaction, so a crash cannot leave a reusable token behind a
// changed password.
func (s *UserStorage) RedeemResetToken(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error {
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`,
		passwordHash, token.UserID); err != nil {
		s.logger.Error("failed to update password", "user_id", token.UserID, "error", err)
		return fmt.Errorf("updating password: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = TRUE WHERE id = $1 AND used = FALSE`,
		token.ID)
	if err != nil {
		s.logger.Error("failed to mark reset token used", "token_id", token.ID, "error", err)
		return fmt.Errorf("marking reset token used: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Lost the race with a concurrent redeem of the same token.
		return fmt.Errorf("reset token already used")
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing reset transaction: %w", err)
	}

	s.logger.Info("password reset redeemed",
		"user_id", token.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
