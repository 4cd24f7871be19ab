package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog/log"
)

// debugTransport logs every request/response pair at debug level through the
// global zerolog logger. It sits beneath the API-key wrapper but still sees
// the Authorization header, so the dump redacts it.
//
// Enable with INSIGHTS_DEBUG=true or DEBUG=true, or WithDebugLogging(true).
// Response bodies are dumped in full; keep it out of production.
type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(redacted(req), true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

func redacted(req *http.Request) *http.Request {
	if req.Header.Get("Authorization") == "" {
		return req
	}
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", AuthScheme+" [REDACTED]")
	return r
}

// debugLoggingRequested reports whether INSIGHTS_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv("INSIGHTS_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
