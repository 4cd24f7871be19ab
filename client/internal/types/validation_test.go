package types

import (
	"errors"
	"testing"
)

func TestParseFilter(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want Filter
		ok   bool
	}{
		{"", FilterNone, true},
		{"none", FilterNone, true},
		{"mode", FilterMode, true},
		{"birth_year", FilterBirthYear, true},
		{"education", FilterEducation, true},
		{"location", FilterLocation, true},
		{"gender", FilterNone, false},
		{"Mode", FilterNone, false},
		{"mode/", FilterNone, false},
	}
	for _, c := range cases {
		got, err := ParseFilter(c.in)
		if c.ok && err != nil {
			t.Fatalf("expected ok for %q, got %v", c.in, err)
		}
		if !c.ok && !errors.Is(err, ErrInvalidFilter) {
			t.Fatalf("expected ErrInvalidFilter for %q, got %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseFilter(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFiltersAreValid(t *testing.T) {
	t.Parallel()
	for _, f := range Filters {
		if !f.Valid() {
			t.Fatalf("%q should be valid", f)
		}
	}
	if FilterNone.String() != "none" {
		t.Fatalf("unexpected FilterNone string %q", FilterNone.String())
	}
}
