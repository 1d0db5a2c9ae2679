package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireRoles(t *testing.T) {
	checker, err := auth.NewRoleAuthorizer()
	require.NoError(t, err)

	authn := &stubAuthenticator{tokens: map[string]*auth.Claims{
		"admin":    {UserID: "a", Roles: []string{auth.RoleAdmin}},
		"manager":  {UserID: "m", Roles: []string{auth.RoleManager}},
		"staff":    {UserID: "s", Roles: []string{auth.RoleStaff}},
		"customer": {UserID: "c", Roles: []string{auth.RoleCustomer}},
	}}

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(DefaultJWTConfig(authn)))
	router.GET("/payroll", RequireRoles(checker, auth.RoleManager), okHandler)
	router.GET("/shipments", RequireRoles(checker, auth.RoleStaff), okHandler)
	router.GET("/products/low-stock", RequireRoles(checker, auth.RoleStaff), okHandler)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"admin inherits manager", "/payroll", "admin", http.StatusOK},
		{"manager", "/payroll", "manager", http.StatusOK},
		{"staff below manager", "/payroll", "staff", http.StatusForbidden},
		{"customer outside tree", "/shipments", "customer", http.StatusForbidden},
		{"manager inherits staff", "/shipments", "manager", http.StatusOK},
		{"public prefix still needs a role", "/products/low-stock", "", http.StatusUnauthorized},
		{"public prefix with staff token", "/products/low-stock", "staff", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(AuthHeaderKey, BearerPrefix+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireRoles_GuardDisabled(t *testing.T) {
	checker, err := auth.NewRoleAuthorizer()
	require.NoError(t, err)

	cfg := DefaultJWTConfig(&stubAuthenticator{})
	cfg.Enabled = false

	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	router.GET("/payroll", RequireRoles(checker, auth.RoleAdmin), okHandler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
