package client

import "github.com/doctoryes/insights-data/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	EnrollmentRecord = types.EnrollmentRecord
	Filter           = types.Filter

	// Typed views, see EnrollmentRecord.Decode
	Enrollment          = types.Enrollment
	ModeEnrollment      = types.ModeEnrollment
	BirthYearEnrollment = types.BirthYearEnrollment
	EducationEnrollment = types.EducationEnrollment
	LocationEnrollment  = types.LocationEnrollment
	Country             = types.Country
)

const (
	FilterNone      = types.FilterNone
	FilterMode      = types.FilterMode
	FilterBirthYear = types.FilterBirthYear
	FilterEducation = types.FilterEducation
	FilterLocation  = types.FilterLocation
)

// ParseFilter maps "mode", "birth_year", "education", "location" (and ""/"none")
// onto a Filter.
func ParseFilter(s string) (Filter, error) { return types.ParseFilter(s) }
