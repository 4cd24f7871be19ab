package errors

import (
	"io"
	"net/http"
	"strings"
)

// MaxBodyBytes bounds how much of an error response is kept on StatusError.
const MaxBodyBytes = 4 << 10

// ClassifyStatus maps HTTP status codes to error categories.
func ClassifyStatus(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ClientError
	case statusCode >= 500 && statusCode < 600:
		return ServerError
	default:
		return Unexpected
	}
}

// NewStatusError builds a StatusError from resp, consuming at most
// MaxBodyBytes of its body. The caller still closes the body.
func NewStatusError(operation string, resp *http.Response) *StatusError {
	var body string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
		body = strings.TrimSpace(string(b))
	}
	return &StatusError{
		Operation:  operation,
		Category:   ClassifyStatus(resp.StatusCode),
		StatusCode: resp.StatusCode,
		Body:       body,
	}
}
