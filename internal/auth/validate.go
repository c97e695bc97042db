package auth

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minPasswordLength = 8
	minAge            = 18
	maxAge            = 100
	maxInputLength    = 1000
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRe     = regexp.MustCompile(`[A-Z]`)
	lowerRe     = regexp.MustCompile(`[a-z]`)
	digitRe     = regexp.MustCompile(`\d`)
	symbolRe    = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
	jsSchemeRe  = regexp.MustCompile(`(?i)javascript:`)
	onHandlerRe = regexp.MustCompile(`(?i)on\w+=`)
)

// ValidEmail reports whether email has the simple local@domain shape the
// platform accepts.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// PasswordErrors returns one message per unmet password requirement. All
// four character classes and the minimum length are required.
func PasswordErrors(password string) []string {
	var errs []string
	if len(password) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if !upperRe.MatchString(password) {
		errs = append(errs, "password must contain an uppercase letter")
	}
	if !lowerRe.MatchString(password) {
		errs = append(errs, "password must contain a lowercase letter")
	}
	if !digitRe.MatchString(password) {
		errs = append(errs, "password must contain a digit")
	}
	if !symbolRe.MatchString(password) {
		errs = append(errs, "password must contain a special character")
	}
	return errs
}

// SanitizeInput trims, strips angle brackets and script-ish fragments, and
// caps the length of free-text input.
func SanitizeInput(input string) string {
	s := strings.TrimSpace(input)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	s = jsSchemeRe.ReplaceAllString(s, "")
	s = onHandlerRe.ReplaceAllString(s, "")
	if len(s) > maxInputLength {
		s = s[:maxInputLength]
	}
	return s
}

// ProfileUpdate carries the profile fields a user may change.
type ProfileUpdate struct {
	Name string
	Age  int
	Bio  string
}

// ValidateProfile returns one message per invalid profile field. Zero-value
// fields are treated as "not being updated" and skipped, except Age when the
// update explicitly carries one.
func ValidateProfile(data ProfileUpdate) []string {
	var errs []string
	if data.Name != "" && (len(data.Name) < 2 || len(data.Name) > 50) {
		errs = append(errs, "name must be between 2 and 50 characters")
	}
	if data.Age != 0 && (data.Age < minAge || data.Age > maxAge) {
		errs = append(errs, fmt.Sprintf("age must be between %d and %d", minAge, maxAge))
	}
	if len(data.Bio) > 500 {
		errs = append(errs, "bio must be at most 500 characters")
	}
	return errs
}
