package middleware

import (
	"crypto/rand"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"

	// MaxRequestIDLength caps ids supplied by clients
	MaxRequestIDLength = 128
)

// RequestID reuses the caller's X-Request-ID when present and sane, otherwise
// mints a ULID so ids sort by arrival time in the logs
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > MaxRequestIDLength {
			id = ulid.MustNew(ulid.Now(), rand.Reader).String()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
