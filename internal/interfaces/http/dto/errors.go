package dto

import (
	"errors"
	"net/http"

	"github.com/storefront/platform/internal/domain/shared"
)

// Transport level error codes. Domain errors carry their own codes, which
// are passed through unchanged.
const (
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeUnauthorized    = "ERR_UNAUTHORIZED"
	ErrCodeForbidden       = "ERR_FORBIDDEN"
	ErrCodeTokenInvalid    = "ERR_TOKEN_INVALID"
	ErrCodeNotFound        = "ERR_NOT_FOUND"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeUnavailable     = "ERR_SERVICE_UNAVAILABLE"
)

// ErrorKindHTTPStatus maps error kinds to HTTP status codes
var ErrorKindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindNotFound:     http.StatusNotFound,
	shared.KindConflict:     http.StatusConflict,
	shared.KindValidation:   http.StatusBadRequest,
	shared.KindInvalidState: http.StatusUnprocessableEntity,
	shared.KindUnauthorized: http.StatusUnauthorized,
	shared.KindForbidden:    http.StatusForbidden,
	shared.KindUpstream:     http.StatusBadGateway,
}

// ErrorCodeHTTPStatus maps transport error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeTokenInvalid:    http.StatusUnauthorized,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for a transport error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// StatusForError returns the HTTP status for err. Unclassified errors are
// treated as upstream failures. A domain error explicitly coded
// SERVICE_UNAVAILABLE maps to 503 instead of 502.
func StatusForError(err error) int {
	kind := shared.KindOf(err)
	if kind == shared.KindUpstream && IsUnavailable(err) {
		return http.StatusServiceUnavailable
	}
	if status, ok := ErrorKindHTTPStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsUnavailable reports whether err signals a disabled or unreachable
// collaborator rather than a bad upstream answer.
func IsUnavailable(err error) bool {
	var de *shared.DomainError
	return errors.As(err, &de) && de.Code == shared.CodeServiceUnavailable
}
