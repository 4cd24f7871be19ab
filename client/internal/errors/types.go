// Package errors provides the typed errors returned by the insights client.
// Callers use errors.As to inspect the HTTP status or decode failure.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory groups HTTP status codes by who is at fault.
type ErrorCategory int

const (
	// ClientError covers 4xx responses: bad course id, missing or wrong token.
	ClientError ErrorCategory = iota

	// ServerError covers 5xx responses.
	ServerError

	// Unexpected covers any other non-2xx status (1xx, 3xx after redirects).
	Unexpected
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ClientError:
		return "ClientError"
	case ServerError:
		return "ServerError"
	case Unexpected:
		return "Unexpected"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// StatusError is returned when the Insights API answers with a non-2xx status.
type StatusError struct {
	Operation  string
	Category   ErrorCategory
	StatusCode int
	Body       string // at most MaxBodyBytes of the response body
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: [%s] HTTP %d", e.Operation, e.Category, e.StatusCode)
	}
	return fmt.Sprintf("%s: [%s] HTTP %d: %s", e.Operation, e.Category, e.StatusCode, e.Body)
}

// DecodeError is returned when the response body is not the expected JSON.
type DecodeError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying json error.
func (e *DecodeError) Unwrap() error { return e.Err }

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == code
	}
	return false
}

// IsDecode reports whether err is a response decode failure.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
