package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenInvalid, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", shared.NewNotFoundError("Product"), http.StatusNotFound},
		{"conflict", shared.NewConflictError("DUPLICATE_SKU", "SKU exists"), http.StatusConflict},
		{"validation", shared.NewValidationError("UNBALANCED_ENTRY", "unbalanced"), http.StatusBadRequest},
		{"invalid state", shared.NewInvalidStateError("not pending"), http.StatusUnprocessableEntity},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden},
		{"upstream", shared.NewUpstreamError("database operation failed", errors.New("conn refused")), http.StatusBadGateway},
		{"unavailable", shared.NewUnavailableError("PDF rendering is disabled"), http.StatusServiceUnavailable},
		{"wrapped", fmt.Errorf("create: %w", shared.NewNotFoundError("Account")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusForError(tt.err))
		})
	}
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{}, 0)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, string(data))
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Product not found", "catalog", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Product not found", resp.Error.Message)
	assert.Equal(t, "catalog", resp.Service)
	assert.Equal(t, "req-123", resp.RequestID)
	require.NotNil(t, resp.Timestamp)
	assert.False(t, resp.Timestamp.IsZero())
	assert.Empty(t, resp.Error.Details)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponse(ErrCodeValidation, "Request validation failed", "payments", "",
		ValidationDetail{Field: "amount", Message: "amount is required"},
	)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "payments", decoded["service"])
	assert.Contains(t, decoded, "timestamp")
	assert.NotContains(t, decoded, "data")
	assert.NotContains(t, decoded, "requestId")

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, ErrCodeValidation, errObj["code"])
	details := errObj["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "amount", details[0].(map[string]any)["field"])
}

func TestListRequest_Normalize(t *testing.T) {
	r := ListRequest{}
	r.Normalize()
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)

	r = ListRequest{Page: 3, PageSize: 50}
	r.Normalize()
	assert.Equal(t, 3, r.Page)
	assert.Equal(t, 50, r.PageSize)
}
