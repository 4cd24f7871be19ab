package types

import (
	"encoding/json"
	"fmt"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// EnrollmentRecord is one enrollment snapshot exactly as the Insights API
// returned it. Keys and values are passed through without validation.
type EnrollmentRecord map[string]any

// Decode converts the record into one of the typed views below (or any other
// struct with matching json tags).
func (r EnrollmentRecord) Decode(v any) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode enrollment record: %w", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("decode enrollment record: %w", err)
	}
	return nil
}

// CourseID returns the "course_id" field, or "" when absent.
func (r EnrollmentRecord) CourseID() string {
	s, _ := r["course_id"].(string)
	return s
}

// Count returns the "count" field. ok is false when the field is missing or
// not a number.
func (r EnrollmentRecord) Count() (n int64, ok bool) {
	switch v := r["count"].(type) {
	case float64:
		return int64(v), true
	case json.Number:
		i, err := v.Int64()
		return i, err == nil
	case int:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// ------------------------------
// Typed views
// ------------------------------

// Enrollment is the daily total for a course.
type Enrollment struct {
	CourseID string `json:"course_id"`
	Date     string `json:"date"`
	Count    int64  `json:"count"`
	Created  string `json:"created"`
}

// ModeEnrollment breaks the daily total down by enrollment mode.
type ModeEnrollment struct {
	Enrollment
	CumulativeCount int64 `json:"cumulative_count"`
	Audit           int64 `json:"audit"`
	Credit          int64 `json:"credit"`
	Honor           int64 `json:"honor"`
	Professional    int64 `json:"professional"`
	Verified        int64 `json:"verified"`
}

// BirthYearEnrollment is the count for a single birth year.
type BirthYearEnrollment struct {
	Enrollment
	BirthYear int `json:"birth_year"`
}

// EducationEnrollment is the count for a single education level.
type EducationEnrollment struct {
	Enrollment
	EducationLevel string `json:"education_level"`
}

// Country identifies a learner location.
type Country struct {
	Alpha2 string `json:"alpha2"`
	Alpha3 string `json:"alpha3"`
	Name   string `json:"name"`
}

// LocationEnrollment is the count for a single country.
type LocationEnrollment struct {
	Enrollment
	Country Country `json:"country"`
}
