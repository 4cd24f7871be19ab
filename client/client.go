// Package client is a Go SDK for the Insights analytics API. It queries the
// course enrollment endpoints and returns the decoded JSON records.
package client

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/doctoryes/insights-data/client/internal/api"
	"github.com/doctoryes/insights-data/client/internal/types"
)

// Version is reported in the default User-Agent.
const Version = "0.1.0"

// DefaultUserAgent is sent unless WithUserAgent overrides it.
const DefaultUserAgent = "insights-data-go/" + Version

const defaultHTTPTimeout = 30 * time.Second

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client queries a single Insights API deployment. It is immutable after New
// and safe for concurrent use.
type Client struct {
	baseURL string
	apiKey  string // empty means no Authorization header is sent
	http    *http.Client
	base    http.RoundTripper // innermost transport, owner of the connection pool

	// knobs applied once in New, after all options ran
	timeout    time.Duration
	userAgent  string
	requestIDs bool
	debug      bool

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL. Exactly one trailing "/" is stripped
// from baseURL. apiKey may be empty, in which case requests carry no
// Authorization header. No network I/O happens here.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: DefaultUserAgent,
		http: &http.Client{
			Timeout:   defaultHTTPTimeout,
			Transport: newBaseTransport(),
		},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	c.wrapTransport()
	return c, nil
}

// newBaseTransport gives every Client its own connection pool so Close can
// release it without touching http.DefaultTransport.
func newBaseTransport() http.RoundTripper {
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		return t.Clone()
	}
	return http.DefaultTransport
}

// wrapTransport installs, from the outside in: request metadata, API-key
// auth, debug logging, then the base transport.
func (c *Client) wrapTransport() {
	rt := c.http.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	c.base = rt
	if c.debug {
		rt = &debugTransport{base: rt}
	}
	rt = newAPIKeyTransport(rt, c.apiKey)
	rt = &metadataTransport{base: rt, userAgent: c.userAgent, requestIDs: c.requestIDs}
	c.http.Transport = rt
}

// BaseURL returns the base URL with the trailing slash removed.
func (c *Client) BaseURL() string { return c.baseURL }

// closeIdler is implemented by *http.Transport and http2 transports.
type closeIdler interface{ CloseIdleConnections() }

// Close releases idle connections held by the base transport. Safe to call
// multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if ci, ok := c.base.(closeIdler); ok {
		ci.CloseIdleConnections()
	}
	return nil
}

// --------------------------------------------------------------------
// Enrollment operations - delegated to internal/api
// --------------------------------------------------------------------

// GetCurrentCourseEnrollment returns today's enrollment snapshot for the course.
// It fails with ErrEmptyResult when the API has no record for it.
func (c *Client) GetCurrentCourseEnrollment(ctx context.Context, courseID string) (EnrollmentRecord, error) {
	return c.current(ctx, courseID, types.FilterNone)
}

// GetCurrentCourseEnrollmentByMode returns today's snapshot broken down by
// enrollment mode (audit, honor, verified, ...).
func (c *Client) GetCurrentCourseEnrollmentByMode(ctx context.Context, courseID string) (EnrollmentRecord, error) {
	return c.current(ctx, courseID, types.FilterMode)
}

// GetCurrentCourseEnrollmentByBirthYear returns one record per birth year.
func (c *Client) GetCurrentCourseEnrollmentByBirthYear(ctx context.Context, courseID string) ([]EnrollmentRecord, error) {
	return c.GetCourseEnrollment(ctx, courseID, types.FilterBirthYear)
}

// GetCurrentCourseEnrollmentByEducation returns one record per education level.
func (c *Client) GetCurrentCourseEnrollmentByEducation(ctx context.Context, courseID string) ([]EnrollmentRecord, error) {
	return c.GetCourseEnrollment(ctx, courseID, types.FilterEducation)
}

// GetCurrentCourseEnrollmentByLocation returns one record per country.
func (c *Client) GetCurrentCourseEnrollmentByLocation(ctx context.Context, courseID string) ([]EnrollmentRecord, error) {
	return c.GetCourseEnrollment(ctx, courseID, types.FilterLocation)
}

// GetCourseEnrollment returns the raw record list for any filter, FilterNone
// included. The breakdown methods above are thin wrappers around it.
func (c *Client) GetCourseEnrollment(ctx context.Context, courseID string, filter Filter) ([]EnrollmentRecord, error) {
	start := time.Now()
	records, err := api.GetEnrollment(ctx, c.http, c.baseURL, courseID, filter)
	observe(filter, start, err)
	return records, err
}

func (c *Client) current(ctx context.Context, courseID string, filter Filter) (EnrollmentRecord, error) {
	start := time.Now()
	rec, err := api.GetCurrentEnrollment(ctx, c.http, c.baseURL, courseID, filter)
	observe(filter, start, err)
	return rec, err
}
