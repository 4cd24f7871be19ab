package client

import (
	"net/http"

	"github.com/google/uuid"
)

// AuthScheme prefixes the API key in the Authorization header.
const AuthScheme = "Token"

// apiKeyTransport wraps an http.RoundTripper to add
// "Authorization: Token <key>" to every request.
type apiKeyTransport struct {
	base   http.RoundTripper
	apiKey string
}

// newAPIKeyTransport returns base unchanged when apiKey is empty: a client
// without a key sends no Authorization header at all.
func newAPIKeyTransport(base http.RoundTripper, apiKey string) http.RoundTripper {
	if apiKey == "" {
		return base
	}
	return &apiKeyTransport{base: base, apiKey: apiKey}
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	cloned := req.Clone(req.Context())
	cloned.Header.Set("Authorization", AuthScheme+" "+t.apiKey)
	return t.base.RoundTrip(cloned)
}

// metadataTransport stamps User-Agent and, when enabled, a fresh X-Request-ID
// on each request that does not already carry one.
type metadataTransport struct {
	base       http.RoundTripper
	userAgent  string
	requestIDs bool
}

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

func (t *metadataTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	if t.userAgent != "" && cloned.Header.Get("User-Agent") == "" {
		cloned.Header.Set("User-Agent", t.userAgent)
	}
	if t.requestIDs && cloned.Header.Get(RequestIDHeader) == "" {
		cloned.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.base.RoundTrip(cloned)
}
