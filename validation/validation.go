package validation

import (
	"regexp"
	"strings"
	"unicode"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var (
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func Email(field, value string, v Violations) {
	if value == "" {
		v[field] = "required"
		return
	}
	if !emailRegex.MatchString(value) {
		v[field] = "invalid_email"
	}
}

// Password requires at least 8 characters with one uppercase letter, one
// lowercase letter, and one digit.
func Password(field, value string, v Violations) {
	if len(value) < 8 {
		v[field] = "too_short"
		return
	}
	var upper, lower, digit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		v[field] = "too_weak"
	}
}

// Username allows 3-30 characters of letters, numbers, underscores, and hyphens.
func Username(field, value string, v Violations) {
	if len(value) < 3 || len(value) > 30 {
		v[field] = "invalid_length"
		return
	}
	if !usernameRegex.MatchString(value) {
		v[field] = "invalid_characters"
	}
}

func MaxLen(field, value string, limit int, v Violations) {
	if len(value) > limit {
		v[field] = "too_long"
	}
}
