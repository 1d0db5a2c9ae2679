package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/storefront/platform/internal/infrastructure/auth"
	"github.com/storefront/platform/internal/infrastructure/logger"
	"github.com/storefront/platform/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey    = "jwt_claims"
	JWTUserIDKey    = "jwt_user_id"
	JWTRolesKey     = "jwt_roles"
	AuthDisabledKey = "auth_disabled"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// Authenticator validates a bearer token and returns its claims
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
}

// JWTMiddlewareConfig holds configuration for the auth guard
type JWTMiddlewareConfig struct {
	Authenticator Authenticator
	// Enabled=false lets every request through unauthenticated
	Enabled bool
	// SkipPaths are exact paths that don't require authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't require authentication
	SkipPathPrefixes []string
	// PublicReadPrefixes are open to GET and HEAD only
	PublicReadPrefixes []string
	Logger             *zap.Logger
}

// DefaultJWTConfig returns the storefront's public surface
func DefaultJWTConfig(authenticator Authenticator) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		Authenticator: authenticator,
		Enabled:       true,
		SkipPaths: []string{
			"/health",
			"/__introspect",
			"/metrics",
			"/auth/login",
			"/auth/register",
			"/auth/refresh",
		},
		SkipPathPrefixes: []string{
			"/api/docs",
		},
		PublicReadPrefixes: []string{
			"/products",
			"/categories",
			"/content/slug/",
			"/translations/language/",
		},
	}
}

// JWTAuthMiddlewareWithConfig creates the bearer token guard
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Set(AuthDisabledKey, true)
			c.Next()
			return
		}
		if isPublic(cfg, c.Request.Method, c.Request.URL.Path) {
			// Claims are still picked up so role checks on public reads work.
			if token := bearerToken(c); token != "" {
				if claims, err := cfg.Authenticator.Authenticate(c.Request.Context(), token); err == nil {
					setClaims(c, claims)
				}
			}
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			handleAuthError(c, log, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			handleAuthError(c, log, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerPrefix))
		if tokenString == "" {
			handleAuthError(c, log, "Missing token")
			return
		}

		claims, err := cfg.Authenticator.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) && de.Kind == shared.KindUnauthorized {
				log.Warn("JWT authentication failed",
					zap.String("code", de.Code),
					zap.String("path", c.Request.URL.Path),
				)
				AbortWithError(c, http.StatusUnauthorized, de.Code, de.Message)
				return
			}
			log.Error("Token check failed", zap.Error(err))
			AbortWithError(c, dto.StatusForError(err), dto.ErrCodeUnavailable, "Authentication is temporarily unavailable")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTRolesKey, claims.Roles)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), claims.UserID))
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader(AuthHeaderKey)
	if !strings.HasPrefix(h, BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, BearerPrefix))
}

func isPublic(cfg JWTMiddlewareConfig, method, path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	if method == http.MethodGet || method == http.MethodHead {
		for _, prefix := range cfg.PublicReadPrefixes {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
	}
	return false
}

func handleAuthError(c *gin.Context, log *zap.Logger, message string) {
	log.Debug("Request rejected by auth guard",
		zap.String("reason", message),
		zap.String("path", c.Request.URL.Path),
	)
	AbortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTRoles retrieves the roles from JWT claims in context
func GetJWTRoles(c *gin.Context) []string {
	return c.GetStringSlice(JWTRolesKey)
}
