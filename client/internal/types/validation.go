package types

import "errors"

// ------------------------------
// Shared Errors
// ------------------------------

// ErrEmptyResult is returned when a single-record query receives an empty list.
var ErrEmptyResult = errors.New("enrollment: empty result")

// ErrInvalidFilter is returned for a breakdown name the API does not know.
var ErrInvalidFilter = errors.New("enrollment: invalid filter")
