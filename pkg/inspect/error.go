package inspect

import (
	"fmt"
	"net/http"
)

// HTTPError is returned by handlers to answer with a status other than 500
type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// NewHTTPError creates an HTTPError. An empty message uses the status text.
func NewHTTPError(code int, message string) *HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return &HTTPError{Code: code, Message: message}
}

// ErrNotFound creates a 404 error
func ErrNotFound(format string, args ...any) *HTTPError {
	return NewHTTPError(http.StatusNotFound, fmt.Sprintf(format, args...))
}

// ErrBadRequest creates a 400 error
func ErrBadRequest(format string, args ...any) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, args...))
}

// ErrorResponse converts a handler error into a status code and JSON body.
// Adapters use it so every framework answers errors the same way.
func ErrorResponse(err error) (int, map[string]string) {
	if he, ok := err.(*HTTPError); ok {
		return he.Code, map[string]string{"error": he.Message}
	}
	return http.StatusInternalServerError, map[string]string{"error": err.Error()}
}
