package dto

import "time"

// Response is the envelope every endpoint answers with
type Response struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message,omitempty"`
	Data      any        `json:"data,omitempty"`
	Count     *int64     `json:"count,omitempty"`
	Error     *ErrorInfo `json:"error,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Service   string     `json:"service,omitempty"`
	RequestID string     `json:"requestId,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Details []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail describes one rejected request field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data any) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewMessageResponse creates a success response carrying a human message
func NewMessageResponse(message string, data any) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewListResponse creates a success response for a collection. count is the
// total number of matching rows, which can exceed len(data) when paging.
func NewListResponse(data any, count int64) Response {
	return Response{
		Success: true,
		Data:    data,
		Count:   &count,
	}
}

// NewErrorResponse creates an error response stamped with the current time
func NewErrorResponse(code, message, service, requestID string, details ...ValidationDetail) Response {
	now := time.Now().UTC()
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: &now,
		Service:   service,
		RequestID: requestID,
	}
}

// ListRequest holds the paging parameters shared by list endpoints
type ListRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// Normalize fills in paging defaults
func (r *ListRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = 20
	}
}
