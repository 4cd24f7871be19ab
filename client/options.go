package client

// Functional options accepted by New.

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Option configures a Client during construction in New.
//
// Options run before the transport chain is assembled, so their order does
// not matter: WithHTTPTimeout or WithDebugLogging before or after
// WithHTTPClient yields the same client.
type Option func(*Client) error

// WithHTTPClient makes the Client send requests through a copy of hc.
// hc itself is never modified; its Transport becomes the base of the chain.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("nil http client")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net for a single request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithDebugLogging logs each request/response at debug level when enabled.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = c.debug || enabled
		return nil
	}
}

// WithUserAgent replaces DefaultUserAgent. An empty value sends Go's default.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithRequestIDs tags every request with a random X-Request-ID.
func WithRequestIDs(enabled bool) Option {
	return func(c *Client) error {
		c.requestIDs = enabled
		return nil
	}
}
