package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	clienterrors "github.com/doctoryes/insights-data/client/internal/errors"
	"github.com/doctoryes/insights-data/client/internal/types"
)

// EnrollmentURL builds {baseURL}/courses/{courseID}/enrollment/[{filter}/].
// The course id is path-escaped so legacy ids such as "edX/DemoX/Demo_Course"
// stay a single segment. baseURL is expected without a trailing slash.
func EnrollmentURL(baseURL, courseID string, filter types.Filter) string {
	u := fmt.Sprintf("%s/courses/%s/enrollment/", baseURL, url.PathEscape(courseID))
	if filter != types.FilterNone {
		u += string(filter) + "/"
	}
	return u
}

// Operation names the call for error messages, e.g. "get enrollment by mode".
func Operation(filter types.Filter) string {
	if filter == types.FilterNone {
		return "get enrollment"
	}
	return "get enrollment by " + string(filter)
}

// GetEnrollment issues a single GET for the course enrollment resource and
// returns the decoded list of records.
func GetEnrollment(ctx context.Context, httpClient HTTPClient, baseURL, courseID string, filter types.Filter) ([]types.EnrollmentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	op := Operation(filter)
	if !filter.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, types.ErrInvalidFilter, string(filter))
	}
	// Client-side validation of courseID omitted; server is the authority
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, EnrollmentURL(baseURL, courseID, filter), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	// Note: Authorization header will be added by transport layer

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, clienterrors.NewStatusError(op, resp)
	}

	var records []types.EnrollmentRecord
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&records); err != nil {
		return nil, &clienterrors.DecodeError{Operation: op, Err: err}
	}
	// the body must hold exactly one JSON value
	var extra json.RawMessage
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after JSON list")
		}
		return nil, &clienterrors.DecodeError{Operation: op, Err: err}
	}
	return records, nil
}

// GetCurrentEnrollment is GetEnrollment for queries whose response holds a
// single snapshot (today's). It returns the first record, or
// types.ErrEmptyResult when the list is empty.
func GetCurrentEnrollment(ctx context.Context, httpClient HTTPClient, baseURL, courseID string, filter types.Filter) (types.EnrollmentRecord, error) {
	records, err := GetEnrollment(ctx, httpClient, baseURL, courseID, filter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s %q: %w", Operation(filter), courseID, types.ErrEmptyResult)
	}
	return records[0], nil
}
