package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/application/identity"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/storefront/platform/internal/infrastructure/cache"
	"github.com/storefront/platform/internal/infrastructure/config"
	"github.com/storefront/platform/internal/infrastructure/persistence"
	"github.com/storefront/platform/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := newTestDatabase(t)
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret-with-enough-entropy",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "storefront-test",
	})
	svc := identity.NewAuthService(
		persistence.NewGormUserRepository(db.DB),
		jwtService,
		cache.NewInMemoryRevocationList(),
		identity.AuthServiceConfig{MaxLoginAttempts: 3, LockDuration: time.Minute},
		nil,
	)
	h := NewAuthHandler(svc)

	r := newTestEngine("identity")
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(svc)))
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)
	return r
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestAuthHandler_RegisterLoginMe(t *testing.T) {
	r := newAuthRouter(t)
	creds := map[string]any{"email": "asha@example.com", "password": "correct-horse-42", "displayName": "Asha"}

	w, env := perform(t, r, http.MethodPost, "/auth/register", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	registered := decodeData[identity.TokenResponse](t, env)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "customer", registered.User.Role)

	w, _ = perform(t, r, http.MethodPost, "/auth/register", creds)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = perform(t, r, http.MethodPost, "/auth/login", map[string]any{"email": "asha@example.com", "password": "wrong-horse"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	w, env = perform(t, r, http.MethodPost, "/auth/login", map[string]any{"email": "asha@example.com", "password": "correct-horse-42"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tokens := decodeData[identity.TokenResponse](t, env)

	w, env = performWithHeaders(t, r, http.MethodGet, "/auth/me", nil, bearer(tokens.AccessToken))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decodeData[identity.UserResponse](t, env)
	assert.Equal(t, "asha@example.com", me.Email)
	assert.NotNil(t, me.LastLoginAt)

	w, _ = perform(t, r, http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_LogoutRevokesToken(t *testing.T) {
	r := newAuthRouter(t)

	w, env := perform(t, r, http.MethodPost, "/auth/register", map[string]any{"email": "ravi@example.com", "password": "s3cret-pass"})
	require.Equal(t, http.StatusCreated, w.Code)
	tokens := decodeData[identity.TokenResponse](t, env)

	w, _ = performWithHeaders(t, r, http.MethodPost, "/auth/logout", nil, bearer(tokens.AccessToken))
	require.Equal(t, http.StatusOK, w.Code)

	w, env = performWithHeaders(t, r, http.MethodGet, "/auth/me", nil, bearer(tokens.AccessToken))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REVOKED", env.Error.Code)
}

func TestAuthHandler_RefreshRotates(t *testing.T) {
	r := newAuthRouter(t)

	w, env := perform(t, r, http.MethodPost, "/auth/register", map[string]any{"email": "mei@example.com", "password": "rotate-me-99"})
	require.Equal(t, http.StatusCreated, w.Code)
	tokens := decodeData[identity.TokenResponse](t, env)

	w, env = perform(t, r, http.MethodPost, "/auth/refresh", map[string]any{"refreshToken": tokens.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, decodeData[identity.TokenResponse](t, env).AccessToken)

	w, _ = perform(t, r, http.MethodPost, "/auth/refresh", map[string]any{"refreshToken": tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "a refresh token is single use")

	w, env = perform(t, r, http.MethodPost, "/auth/refresh", map[string]any{"refreshToken": "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_INVALID", env.Error.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	r := newAuthRouter(t)

	w, env := perform(t, r, http.MethodPost, "/auth/register", map[string]any{"email": "not-an-email", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
	assert.Len(t, env.Error.Details, 2)
}
