// Package middleware provides the gin middleware chain shared by every
// storefront service.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/storefront/platform/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// ServiceKey holds the owning service's name for error envelopes
const ServiceKey = "service"

// ServiceName is installed per domain group so envelopes say which service
// answered
func ServiceName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ServiceKey, name)
		c.Next()
	}
}

// AbortWithError stops the chain and writes the error envelope
func AbortWithError(c *gin.Context, status int, code, message string, details ...dto.ValidationDetail) {
	env := dto.NewErrorResponse(code, message, c.GetString(ServiceKey), c.GetString(RequestIDKey), details...)
	c.AbortWithStatusJSON(status, env)
}

// Recovery logs the panic with its stack and answers 500
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error("Panic recovered",
				zap.Any("panic", r),
				zap.String("request_id", c.GetString(RequestIDKey)),
				zap.String("route", c.FullPath()),
				zap.String("path", c.Request.URL.Path),
				zap.ByteString("stack", debug.Stack()),
			)
			AbortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
		}()
		c.Next()
	}
}

func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		AbortWithError(c, http.StatusNotFound, dto.ErrCodeNotFound,
			"Route "+c.Request.Method+" "+c.Request.URL.Path+" not found")
	}
}
