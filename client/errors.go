package client

import (
	"errors"

	clienterrors "github.com/doctoryes/insights-data/client/internal/errors"
	"github.com/doctoryes/insights-data/client/internal/types"
)

// ErrEmptyBaseURL is returned by New when no base URL is given.
var ErrEmptyBaseURL = errors.New("baseURL cannot be empty")

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrEmptyResult   = types.ErrEmptyResult
	ErrInvalidFilter = types.ErrInvalidFilter
)

type (
	// StatusError is returned for any non-2xx response.
	StatusError = clienterrors.StatusError
	// DecodeError is returned when the body is not a JSON list of records.
	DecodeError   = clienterrors.DecodeError
	ErrorCategory = clienterrors.ErrorCategory
)

const (
	ClientError = clienterrors.ClientError
	ServerError = clienterrors.ServerError
	Unexpected  = clienterrors.Unexpected
)

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool { return clienterrors.IsStatus(err, code) }

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool { return clienterrors.IsDecode(err) }
