package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern, applied after normalization
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Activity name min/max length
	ActivityNameMinLength = 2
	ActivityNameMaxLength = 100

	// Grade levels offered by the school
	GradeLevelMin = 6
	GradeLevelMax = 12
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// NormalizeEmail lower-cases and trims an email address. Email uniqueness is
// case-insensitive: every email is normalized before it is stored or compared,
// so the database unique index only ever sees normalized values.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether the normalized form of email is well-formed.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(NormalizeEmail(email))
}

// IsValidActivityName reports whether an activity name is within bounds.
func IsValidActivityName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= ActivityNameMinLength && len(trimmed) <= ActivityNameMaxLength
}

// IsValidGradeLevel reports whether a grade level is one the school offers.
// A nil grade level is valid: the column is optional.
func IsValidGradeLevel(grade *int) bool {
	if grade == nil {
		return true
	}
	return *grade >= GradeLevelMin && *grade <= GradeLevelMax
}
