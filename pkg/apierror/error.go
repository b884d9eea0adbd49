package apierror

import (
	"encoding/json"
	"net/http"
)

// BearerChallenge is the WWW-Authenticate value sent with auth failures.
const BearerChallenge = "Bearer"

// Error represents a structured API error response.
type Error struct {
	StatusCode int          `json:"-"`
	Code       string       `json:"code"`
	Message    string       `json:"message"`
	Details    []FieldError `json:"details,omitempty"`

	// Headers are written alongside the error body.
	Headers map[string]string `json:"-"`
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetails adds field-level error details.
func (e *Error) WithDetails(details ...FieldError) *Error {
	e.Details = details
	return e
}

// WithHeader attaches a response header to the error.
func (e *Error) WithHeader(key, value string) *Error {
	if e.Headers == nil {
		e.Headers = make(map[string]string)
	}
	e.Headers[key] = value
	return e
}

// WithChallenge marks the error with a bearer WWW-Authenticate challenge.
func (e *Error) WithChallenge() *Error {
	return e.WithHeader("WWW-Authenticate", BearerChallenge)
}

type body struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error"`
}

// ToJSON converts the error to JSON bytes.
func (e *Error) ToJSON() []byte {
	data, _ := json.Marshal(body{Success: false, Error: e})
	return data
}

// BadRequest creates a 400 Bad Request error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

// ValidationError creates a 422 error with validation details.
func ValidationError(message string, details ...FieldError) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       "VALIDATION_ERROR",
		Message:    message,
		Details:    details,
	}
}

// UnprocessableEntity creates a 422 Unprocessable Entity error.
func UnprocessableEntity(message string) *Error {
	return &Error{
		StatusCode: http.StatusUnprocessableEntity,
		Code:       "UNPROCESSABLE_ENTITY",
		Message:    message,
	}
}

// Unauthorized creates a 401 Unauthorized error.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "Not authenticated"
	}
	return &Error{
		StatusCode: http.StatusUnauthorized,
		Code:       "UNAUTHORIZED",
		Message:    message,
	}
}

// Forbidden creates a 403 Forbidden error.
func Forbidden(message string) *Error {
	if message == "" {
		message = "Access denied"
	}
	return &Error{
		StatusCode: http.StatusForbidden,
		Code:       "FORBIDDEN",
		Message:    message,
	}
}

// NotFound creates a 404 Not Found error.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// Locked creates a 423 Locked error.
func Locked(message string) *Error {
	return &Error{
		StatusCode: http.StatusLocked,
		Code:       "LOCKED",
		Message:    message,
	}
}

// InternalError creates a 500 Internal Server Error.
func InternalError(message string) *Error {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return &Error{
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
	}
}

// BadGateway creates a 502 Bad Gateway error.
func BadGateway(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadGateway,
		Code:       "BAD_GATEWAY",
		Message:    message,
	}
}

// ServiceUnavailable creates a 503 Service Unavailable error.
func ServiceUnavailable(message string) *Error {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	return &Error{
		StatusCode: http.StatusServiceUnavailable,
		Code:       "SERVICE_UNAVAILABLE",
		Message:    message,
	}
}
