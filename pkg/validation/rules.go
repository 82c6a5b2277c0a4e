package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Canonical rule identifiers reported on Error.Rule.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleEnum      = "enum"
	RuleEmail     = "email"
	RuleURL       = "url"
	RuleMinItems  = "minItems"
	RuleAccepted  = "accepted"
)

// Error describes a failed rule. Message is meant for display next to the
// offending field.
type Error struct {
	Rule    string
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func fail(rule, message string) error {
	return &Error{Rule: rule, Message: message}
}

// MinLength requires at least min code points.
func MinLength(value string, min int, message string) error {
	if utf8.RuneCountInString(value) < min {
		return fail(RuleMinLength, message)
	}
	return nil
}

// RangeMessages configures the messages reported by IntRange.
type RangeMessages struct {
	Required string
	TooSmall string
	TooLarge string
}

// IntRange requires a present value within [min, max]. A nil value reports
// the Required message.
func IntRange(value *int, min, max int, messages RangeMessages) error {
	if value == nil {
		return fail(RuleRequired, messages.Required)
	}
	if *value < min {
		return fail(RuleMin, messages.TooSmall)
	}
	if *value > max {
		return fail(RuleMax, messages.TooLarge)
	}
	return nil
}

// OneOf requires value to be a member of allowed. The zero value of T is
// treated as "not selected" and reports the required message.
func OneOf[T comparable](value T, allowed []T, required, invalid string) error {
	var zero T
	if value == zero {
		return fail(RuleRequired, required)
	}
	for _, candidate := range allowed {
		if candidate == value {
			return nil
		}
	}
	return fail(RuleEnum, invalid)
}

// MinItems requires a collection of at least min entries.
func MinItems[T any](items []T, min int, message string) error {
	if len(items) < min {
		return fail(RuleMinItems, message)
	}
	return nil
}

// MustBeTrue requires an explicit true, used for consent checkboxes.
func MustBeTrue(value bool, message string) error {
	if !value {
		return fail(RuleAccepted, message)
	}
	return nil
}

// The local part may not end with a dot or an apostrophe; leading dots and runs
// of dots are rejected separately since RE2 has no lookahead.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@(?:[A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// IsEmail reports whether value has the shape of an email address.
func IsEmail(value string) bool {
	if value == "" || strings.HasPrefix(value, ".") || strings.Contains(value, "..") {
		return false
	}
	return emailPattern.MatchString(value)
}

// Email requires value to look like an email address.
func Email(value, message string) error {
	if !IsEmail(value) {
		return fail(RuleEmail, message)
	}
	return nil
}

// OptionalURL accepts the empty string or an absolute URL.
func OptionalURL(raw, message string) error {
	if result := ParseOptionalURL(raw); result.Kind == URLInvalid {
		return fail(RuleURL, message)
	}
	return nil
}

// Enum renders allowed values for use in messages.
func Enum[T ~string](allowed []T) string {
	parts := make([]string, len(allowed))
	for i, value := range allowed {
		parts[i] = string(value)
	}
	return strings.Join(parts, ", ")
}
