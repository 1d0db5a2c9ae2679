package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/identity"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/storefront/platform/internal/infrastructure/cache"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func newTestAuthService(repo *MockUserRepository) (*AuthService, *cache.InMemoryRevocationList) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "storefront-test",
	})
	revoked := cache.NewInMemoryRevocationList()
	cfg := AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: time.Minute}
	return NewAuthService(repo, jwtService, revoked, cfg, nil), revoked
}

func newTestUser(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("jane@shop.io", "secret123", "Jane")
	require.NoError(t, err)
	return u
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer and issues tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		repo.On("ExistsByEmail", ctx, "jane@shop.io").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(ctx, RegisterRequest{Email: "Jane@Shop.io", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "customer", resp.User.Role)

		claims, err := svc.Authenticate(ctx, resp.AccessToken)
		require.NoError(t, err)
		assert.True(t, claims.HasRole("customer"))
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		repo.On("ExistsByEmail", ctx, "jane@shop.io").Return(true, nil)

		_, err := svc.Register(ctx, RegisterRequest{Email: "jane@shop.io", Password: "secret123"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindConflict))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := newTestUser(t)
		repo.On("FindByEmail", ctx, "jane@shop.io").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		resp, err := svc.Login(ctx, LoginRequest{Email: "jane@shop.io", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		repo.On("FindByEmail", ctx, "ghost@shop.io").Return(nil, shared.NewNotFoundError("User"))

		_, err := svc.Login(ctx, LoginRequest{Email: "ghost@shop.io", Password: "secret123"})
		require.Error(t, err)
		assert.True(t, shared.IsKind(err, shared.KindUnauthorized))
	})

	t.Run("locks after repeated failures", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc, _ := newTestAuthService(repo)
		user := newTestUser(t)
		repo.On("FindByEmail", ctx, "jane@shop.io").Return(user, nil)
		repo.On("Save", ctx, user).Return(nil)

		for range 3 {
			_, err := svc.Login(ctx, LoginRequest{Email: "jane@shop.io", Password: "wrong-pass1"})
			require.Error(t, err)
		}
		assert.True(t, user.IsLocked())

		_, err := svc.Login(ctx, LoginRequest{Email: "jane@shop.io", Password: "secret123"})
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.NewDomainError(shared.KindUnauthorized, "ACCOUNT_LOCKED", ""))
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, _ := newTestAuthService(repo)
	user := newTestUser(t)
	repo.On("FindByEmail", ctx, "jane@shop.io").Return(user, nil)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	login, err := svc.Login(ctx, LoginRequest{Email: "jane@shop.io", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken)

	// refresh tokens rotate
	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindUnauthorized))

	_, err = svc.Refresh(ctx, RefreshRequest{RefreshToken: login.AccessToken})
	require.Error(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, revocations := newTestAuthService(repo)
	user := newTestUser(t)
	repo.On("FindByEmail", ctx, "jane@shop.io").Return(user, nil)
	repo.On("Save", ctx, user).Return(nil)

	login, err := svc.Login(ctx, LoginRequest{Email: "jane@shop.io", Password: "secret123"})
	require.NoError(t, err)
	claims, err := svc.Authenticate(ctx, login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := revocations.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.Authenticate(ctx, login.AccessToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.NewDomainError(shared.KindUnauthorized, "TOKEN_REVOKED", ""))
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc, _ := newTestAuthService(repo)
	user := newTestUser(t)
	repo.On("FindByID", ctx, user.ID).Return(user, nil)

	resp, err := svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@shop.io", resp.Email)
}
