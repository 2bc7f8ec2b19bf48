package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	// Deliberately a single error for both causes.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned for any malformed, mis-signed or expired
	// token. The cause is never distinguished to the caller.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden is returned when an authenticated user lacks access to a
	// resource.
	ErrForbidden = errors.New("access denied")
	// ErrInvalidCard is returned when card number validation fails.
	ErrInvalidCard = NewValidation("invalid card number")
)

// ValidationError is a client-correctable input problem carrying a
// human-readable reason.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation creates a ValidationError with the given message.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Validationf creates a ValidationError with a formatted message.
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NotFoundf creates a NotFoundError with a formatted message.
func NotFoundf(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors map to
// a generic internal error; their detail is only logged server-side.
func MapErrorToHTTP(err error) *HTTPError {
	var validation *ValidationError
	var notFound *NotFoundError

	switch {
	case errors.As(err, &validation):
		return NewHTTPError(http.StatusBadRequest, validation.Message, "VALIDATION_ERROR")
	case errors.As(err, &notFound):
		return NewHTTPError(http.StatusNotFound, notFound.Message, "NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "AUTHENTICATION_ERROR")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
