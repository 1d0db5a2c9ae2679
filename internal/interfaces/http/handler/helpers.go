package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/platform/internal/domain/shared"
)

// queryBool parses an optional boolean query parameter
func queryBool(c *gin.Context, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, shared.NewValidationError("INVALID_QUERY", name+" must be true or false")
	}
	return &v, nil
}

// queryInt parses an optional integer query parameter, returning def when absent
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, shared.NewValidationError("INVALID_QUERY", name+" must be an integer")
	}
	return v, nil
}

// queryDecimal parses an optional decimal query parameter
func queryDecimal(c *gin.Context, name string) (*decimal.Decimal, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, shared.NewValidationError("INVALID_QUERY", name+" must be a number")
	}
	return &v, nil
}

// queryUUID parses an optional uuid query parameter
func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.NewValidationError("INVALID_QUERY", name+" must be a UUID")
	}
	return &v, nil
}

// queryTime accepts RFC 3339 timestamps or plain dates
func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, shared.NewValidationError("INVALID_QUERY", name+" must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}

// endOfDay widens a plain date upper bound to cover the whole day
func endOfDay(c *gin.Context, name string, t *time.Time) *time.Time {
	if t == nil || len(c.Query(name)) != len("2006-01-02") {
		return t
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}
