package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
)

const resetTokenTTL = time.Hour

type authInteractor struct {
	users    ports.UserStorage
	sessions ports.SessionStore
	hasher   ports.PasswordHasher
	logger   *slog.Logger
}

// NewAuthUseCase builds the auth interactor.
func NewAuthUseCase(
	users ports.UserStorage,
	sessions ports.SessionStore,
	hasher ports.PasswordHasher,
	logger *slog.Logger,
) AuthUseCase {
	return &authInteractor{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}
}

func (a *authInteractor) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
		CreatedAt:    time.Now(),
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	a.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login fails identically for unknown emails and wrong passwords so the
// response never reveals which emails are registered.
func (a *authInteractor) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || !a.hasher.Verify(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	identity := user.Identity()
	sessionID, err := a.sessions.Create(ctx, identity)
	if err != nil {
		return "", nil, err
	}

	a.logger.Info("user logged in", "user_id", user.ID)
	return sessionID, &identity, nil
}

func (a *authInteractor) Logout(ctx context.Context, sessionID string) error {
	return a.sessions.Destroy(ctx, sessionID)
}

func (a *authInteractor) CurrentSession(ctx context.Context, sessionID string) (*domain.Identity, error) {
	if sessionID == "" {
		return nil, nil
	}
	return a.sessions.Get(ctx, sessionID)
}

// RequestPasswordReset hands the token back to the caller; there is no
// out-of-band delivery.
func (a *authInteractor) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	token := &domain.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := a.users.CreateResetToken(ctx, token); err != nil {
		return "", err
	}

	a.logger.Info("password reset requested", "user_id", user.ID)
	return token.Token, nil
}

func (a *authInteractor) ResetPassword(ctx context.Context, token, newPassword string) error {
	t, err := a.users.GetResetToken(ctx, token)
	if err != nil {
		return err
	}
	if t == nil || !t.Valid(time.Now()) {
		return ErrInvalidToken
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := a.users.RedeemResetToken(ctx, t, hash); err != nil {
		return fmt.Errorf("redeeming reset token: %w", err)
	}

	a.logger.Info("password reset completed", "user_id", t.UserID)
	return nil
}
