package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctoryes/insights-data/client"
)

type seen struct {
	mu   sync.Mutex
	path string
	auth string
}

func (s *seen) record(r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = r.URL.EscapedPath()
	s.auth = r.Header.Get("Authorization")
}

func (s *seen) get() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path, s.auth
}

func stubBackend(t *testing.T, status int, body string) (*httptest.Server, *seen) {
	t.Helper()
	s := &seen{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, s
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCLI_Enrollment(t *testing.T) {
	srv, s := stubBackend(t, http.StatusOK, `[{"course_id":"edX/DemoX/Demo_Course","count":1234,"date":"2014-03-05"}]`)

	out, err := run(t, "enrollment", "edX/DemoX/Demo_Course", "--base-url", srv.URL+"/", "--api-key", "secret")
	require.NoError(t, err)

	path, auth := s.get()
	assert.Equal(t, "/courses/edX%2FDemoX%2FDemo_Course/enrollment/", path)
	assert.Equal(t, "Token secret", auth)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "edX/DemoX/Demo_Course", got["course_id"])
	assert.EqualValues(t, 1234, got["count"])
	assert.Contains(t, out, "\n  \"count\"", "output should be indented")
}

func TestCLI_Subcommands(t *testing.T) {
	cases := []struct {
		cmd    string
		suffix string
		list   bool
	}{
		{"enrollment", "/enrollment/", false},
		{"enrollment-by-mode", "/enrollment/mode/", false},
		{"enrollment-by-birth-year", "/enrollment/birth_year/", true},
		{"enrollment-by-education", "/enrollment/education/", true},
		{"enrollment-by-location", "/enrollment/location/", true},
	}
	for _, tc := range cases {
		t.Run(tc.cmd, func(t *testing.T) {
			srv, s := stubBackend(t, http.StatusOK, `[{"count":1},{"count":2}]`)

			out, err := run(t, tc.cmd, "c1", "--base-url", srv.URL)
			require.NoError(t, err)

			path, auth := s.get()
			assert.Equal(t, "/courses/c1"+tc.suffix, path)
			assert.Empty(t, auth, "no api key means no Authorization header")

			if tc.list {
				var got []map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &got))
				assert.Len(t, got, 2)
			} else {
				var got map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &got))
				assert.EqualValues(t, 1, got["count"])
			}
		})
	}
}

func TestCLI_Compact(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusOK, `[{"birth_year":1990,"count":3},{"birth_year":1991,"count":4}]`)

	out, err := run(t, "enrollment-by-birth-year", "c1", "--base-url", srv.URL, "--compact")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestCLI_StatusError(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusNotFound, `{"detail":"Not found."}`)

	out, err := run(t, "enrollment", "missing", "--base-url", srv.URL)
	require.Error(t, err)
	assert.Empty(t, out)

	var se *client.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
}

func TestCLI_EmptyResult(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusOK, `[]`)

	_, err := run(t, "enrollment-by-mode", "c1", "--base-url", srv.URL)
	require.ErrorIs(t, err, client.ErrEmptyResult)
}

func TestCLI_RequiresCourseID(t *testing.T) {
	_, err := run(t, "enrollment", "--base-url", "http://127.0.0.1:1")
	require.Error(t, err)
}

func TestCLI_RejectsBadTimeout(t *testing.T) {
	_, err := run(t, "enrollment", "c1", "--base-url", "http://127.0.0.1:1", "--timeout", "0s")
	require.Error(t, err)
}

func TestCLI_FlagOverridesInvalidEnv(t *testing.T) {
	srv, _ := stubBackend(t, http.StatusOK, `[{"count":7}]`)
	t.Setenv("INSIGHTS_HTTP_TIMEOUT", "0s")
	t.Setenv("INSIGHTS_BASE_URL", "")

	_, err := run(t, "enrollment", "c1")
	require.Error(t, err, "invalid env must fail without overriding flags")

	out, err := run(t, "enrollment", "c1", "--base-url", srv.URL, "--timeout", "5s")
	require.NoError(t, err)
	assert.Contains(t, out, `"count": 7`)
}
