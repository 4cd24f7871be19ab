package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	t.Parallel()
	cases := map[int]ErrorCategory{
		400: ClientError, 401: ClientError, 404: ClientError, 429: ClientError,
		500: ServerError, 503: ServerError,
		302: Unexpected, 100: Unexpected,
	}
	for code, want := range cases {
		if got := ClassifyStatus(code); got != want {
			t.Fatalf("ClassifyStatus(%d) = %s, want %s", code, got, want)
		}
	}
}

func TestNewStatusError_TruncatesBody(t *testing.T) {
	t.Parallel()
	big := strings.Repeat("x", MaxBodyBytes*2)
	resp := &http.Response{StatusCode: 502, Body: io.NopCloser(strings.NewReader(big))}
	se := NewStatusError("get enrollment", resp)
	if len(se.Body) != MaxBodyBytes {
		t.Fatalf("body len %d, want %d", len(se.Body), MaxBodyBytes)
	}
	if se.Category != ServerError {
		t.Fatalf("unexpected category %s", se.Category)
	}
}

func TestIsStatusAndIsDecode(t *testing.T) {
	t.Parallel()
	resp := &http.Response{StatusCode: 404, Body: io.NopCloser(bytes.NewBufferString(`{"detail":"Not found."}`))}
	wrapped := fmt.Errorf("outer: %w", NewStatusError("get enrollment", resp))
	if !IsStatus(wrapped, 404) {
		t.Fatal("expected IsStatus 404")
	}
	if IsStatus(wrapped, 500) || IsStatus(errors.New("plain"), 404) {
		t.Fatal("unexpected IsStatus match")
	}
	if !strings.Contains(wrapped.Error(), "Not found.") {
		t.Fatalf("body missing from message: %s", wrapped.Error())
	}

	var syn *json.SyntaxError
	de := &DecodeError{Operation: "get enrollment", Err: json.Unmarshal([]byte("{bad"), &struct{}{})}
	if !IsDecode(fmt.Errorf("x: %w", de)) {
		t.Fatal("expected IsDecode")
	}
	if !errors.As(de, &syn) {
		t.Fatal("expected DecodeError to unwrap to *json.SyntaxError")
	}
}

func TestErrorCategory_String(t *testing.T) {
	t.Parallel()
	if ClientError.String() != "ClientError" || ErrorCategory(9).String() != "Unknown(9)" {
		t.Fatal("unexpected category strings")
	}
}
