package api

import (
	"net/http"
)

// HTTPClient is the subset of *http.Client the api functions need.
// Tests pass their own.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
