package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/interfaces/http/dto"
)

// RoleChecker decides whether held roles satisfy one of the required roles
type RoleChecker interface {
	Allows(held []string, required ...string) (bool, error)
}

// RequireRoles admits requests whose token carries one of roles, directly or
// through inheritance. It is a no-op while the auth guard is disabled.
func RequireRoles(checker RoleChecker, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(AuthDisabledKey) || len(roles) == 0 {
			c.Next()
			return
		}
		claims := GetJWTClaims(c)
		if claims == nil {
			AbortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		ok, err := checker.Allows(claims.Roles, roles...)
		if err != nil {
			AbortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Failed to evaluate roles")
			return
		}
		if !ok {
			AbortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Insufficient role for this operation")
			return
		}
		c.Next()
	}
}
