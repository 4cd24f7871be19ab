package types

import "fmt"

// Filter selects a breakdown dimension of the enrollment resource. It is
// appended to the enrollment URL as its own path segment.
type Filter string

const (
	FilterNone      Filter = ""
	FilterMode      Filter = "mode"
	FilterBirthYear Filter = "birth_year"
	FilterEducation Filter = "education"
	FilterLocation  Filter = "location"
)

// Filters lists every breakdown the API supports, FilterNone excluded.
var Filters = []Filter{FilterMode, FilterBirthYear, FilterEducation, FilterLocation}

// Valid reports whether f is FilterNone or one of Filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterNone, FilterMode, FilterBirthYear, FilterEducation, FilterLocation:
		return true
	}
	return false
}

func (f Filter) String() string {
	if f == FilterNone {
		return "none"
	}
	return string(f)
}

// ParseFilter maps a user supplied name onto a Filter. "" and "none" both
// yield FilterNone.
func ParseFilter(s string) (Filter, error) {
	if s == "none" {
		return FilterNone, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return FilterNone, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return f, nil
}
