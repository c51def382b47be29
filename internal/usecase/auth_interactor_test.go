package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/villa-93/mini-store/internal/domain"
)

type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStorage) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserStorage) UpdateUser(ctx context.Context, id int64, name, passwordHash string) error {
	args := m.Called(ctx, id, name, passwordHash)
	return args.Error(0)
}

func (m *MockUserStorage) CreateResetToken(ctx context.Context, token *domain.PasswordResetToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockUserStorage) GetResetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}

func (m *MockUserStorage) RedeemResetToken(ctx context.Context, token *domain.PasswordResetToken, passwordHash string) error {
	args := m.Called(ctx, token, passwordHash)
	return args.Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, identity domain.Identity) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Identity), args.Error(1)
}

func (m *MockSessionStore) Destroy(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// stubHasher is a deterministic PasswordHasher for tests; bcrypt itself is
// covered in its own package.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hash:" + password, nil }
func (stubHasher) Verify(password, hash string) bool    { return hash == "hash:"+password }

func TestLoginUniformFailure(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetUserByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)
	users.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(&domain.User{
		ID:           1,
		Email:        "ana@example.com",
		PasswordHash: "hash:secreta",
		Role:         domain.RoleCustomer,
	}, nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())

	_, _, errUnknown := uc.Login(context.Background(), "unknown@example.com", "whatever")
	_, _, errWrongPass := uc.Login(context.Background(), "ana@example.com", "incorrecta")

	// Unknown email and wrong password must be indistinguishable.
	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())

	sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginSuccessCreatesSession(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(&domain.User{
		ID:           1,
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "hash:secreta",
		Role:         domain.RoleCustomer,
	}, nil)
	sessions.On("Create", mock.Anything, mock.Anything).Return("sess-1", nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	sessionID, identity, err := uc.Login(context.Background(), "Ana@Example.com", "secreta")

	assert.NoError(t, err)
	assert.Equal(t, "sess-1", sessionID)
	assert.Equal(t, int64(1), identity.ID)
	assert.Equal(t, domain.RoleCustomer, identity.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: 1}, nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	_, err := uc.Register(context.Background(), "Ana", "ana@example.com", "secreta")

	assert.ErrorIs(t, err, ErrEmailTaken)
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterAssignsCustomerRole(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(nil, nil)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleCustomer && u.PasswordHash == "hash:secreta"
	})).Return(nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	user, err := uc.Register(context.Background(), "Ana", "ana@example.com", "secreta")

	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetUserByEmail", mock.Anything, "unknown@example.com").Return(nil, nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	_, err := uc.RequestPasswordReset(context.Background(), "unknown@example.com")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRequestPasswordResetStoresToken(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(&domain.User{ID: 1}, nil)
	users.On("CreateResetToken", mock.Anything, mock.MatchedBy(func(tok *domain.PasswordResetToken) bool {
		return tok.UserID == 1 && tok.Token != "" && tok.ExpiresAt.After(time.Now())
	})).Return(nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	token, err := uc.RequestPasswordReset(context.Background(), "ana@example.com")

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestResetPasswordRejectsUsedToken(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetResetToken", mock.Anything, "tok-1").Return(&domain.PasswordResetToken{
		ID:        1,
		UserID:    1,
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour), // still inside the window
		Used:      true,
	}, nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	err := uc.ResetPassword(context.Background(), "tok-1", "nueva")

	assert.ErrorIs(t, err, ErrInvalidToken)
	users.AssertNotCalled(t, "RedeemResetToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestResetPasswordRejectsExpiredToken(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetResetToken", mock.Anything, "tok-2").Return(&domain.PasswordResetToken{
		ID:        2,
		UserID:    1,
		Token:     "tok-2",
		ExpiresAt: time.Now().Add(-time.Minute),
		Used:      false, // unused but expired
	}, nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	err := uc.ResetPassword(context.Background(), "tok-2", "nueva")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordRejectsUnknownToken(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetResetToken", mock.Anything, "tok-x").Return(nil, nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	err := uc.ResetPassword(context.Background(), "tok-x", "nueva")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResetPasswordSuccess(t *testing.T) {
	users := new(MockUserStorage)
	sessions := new(MockSessionStore)

	users.On("GetResetToken", mock.Anything, "tok-3").Return(&domain.PasswordResetToken{
		ID:        3,
		UserID:    1,
		Token:     "tok-3",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	users.On("RedeemResetToken", mock.Anything, mock.Anything, "hash:nueva").Return(nil)

	uc := NewAuthUseCase(users, sessions, stubHasher{}, discardLogger())
	err := uc.ResetPassword(context.Background(), "tok-3", "nueva")

	assert.NoError(t, err)
	users.AssertCalled(t, "RedeemResetToken", mock.Anything, mock.Anything, "hash:nueva")
}
