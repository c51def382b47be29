package usecase

import (
	"context"
	"log/slog"

	"github.com/villa-93/mini-store/internal/core/ports"
	"github.com/villa-93/mini-store/internal/domain"
)

type profileInteractor struct {
	users  ports.UserStorage
	hasher ports.PasswordHasher
	logger *slog.Logger
}

// NewProfileUseCase builds the profile interactor.
func NewProfileUseCase(users ports.UserStorage, hasher ports.PasswordHasher, logger *slog.Logger) ProfileUseCase {
	return &profileInteractor{users: users, hasher: hasher, logger: logger}
}

func (p *profileInteractor) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := p.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (p *profileInteractor) UpdateProfile(ctx context.Context, userID int64, name, newPassword string) error {
	hash := ""
	if newPassword != "" {
		var err error
		hash, err = p.hasher.Hash(newPassword)
		if err != nil {
			return err
		}
	}

	if err := p.users.UpdateUser(ctx, userID, name, hash); err != nil {
		return err
	}

	p.logger.Info("profile updated", "user_id", userID, "password_changed", newPassword != "")
	return nil
}
