package record

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minTextLen = 2
	maxTextLen = 50
)

var (
	idPattern   = regexp.MustCompile(`^\d{9,12}$`)
	namePattern = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
)

// IsValidID reports whether id is 9 to 12 ASCII digits.
// The id is matched as given; callers trim before validating.
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}

// IsValidName reports whether the trimmed name is 2 to 50 letters or spaces.
func IsValidName(name string) bool {
	return namePattern.MatchString(strings.TrimSpace(name))
}

// IsValidDepartment reports whether the trimmed department is 2 to 50
// characters long. Length is counted in code points.
func IsValidDepartment(department string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(department))
	return n >= minTextLen && n <= maxTextLen
}

// Validate checks id, name and department in that order and returns a
// KindValidation error for the first field that fails.
func Validate(id, name, department string) error {
	if !IsValidID(id) {
		return NewValidationError("id", "id must be 9-12 digits")
	}
	if !IsValidName(name) {
		return NewValidationError("name", "name must be 2-50 letters or spaces")
	}
	if !IsValidDepartment(department) {
		return NewValidationError("department", "department must be 2-50 characters")
	}
	return nil
}
