package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// errRT is an http.RoundTripper that always returns an error (simulates network failure).
type errRT struct{}

func (e *errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

// pathRecorder remembers the escaped path of the last request a stub served.
type pathRecorder struct {
	mu   sync.Mutex
	path string
}

func (p *pathRecorder) set(s string) {
	p.mu.Lock()
	p.path = s
	p.mu.Unlock()
}

func (p *pathRecorder) get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// jsonServer answers every GET with status and body.
func jsonServer(t *testing.T, status int, body string, rec *pathRecorder) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if rec != nil {
			rec.set(r.URL.EscapedPath())
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}
