package response

import (
	"net/http"
	"time"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Timestamp        time.Time         `json:"timestamp"`
	Status           int               `json:"status"`
	Error            string            `json:"error"`
	Message          string            `json:"message,omitempty"`
	Detail           string            `json:"detail,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

// NewErrorResponse creates an error body for status.
func NewErrorResponse(status int, message, detail string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Detail:    detail,
	}
}

// NewValidationErrorResponse creates a 400 body listing one message per field.
func NewValidationErrorResponse(fields map[string]string) ErrorResponse {
	resp := NewErrorResponse(http.StatusBadRequest, "validation failed", "")
	resp.ValidationErrors = fields
	return resp
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse is the answer of a per-department count.
type CountResponse struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}
