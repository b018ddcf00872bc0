// Package validation provides field-scoped client-side validation. A
// validation failure belongs next to the offending form field; it is caught
// before any network call and never reaches the notification channel.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// FieldError is one validation failure tied to a named field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is a set of field errors. A nil or empty set means valid.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns the set as an error, or nil when empty. Callers return the
// result directly from Validate methods.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ByField returns the first message for a field, for inline rendering.
func (e Errors) ByField(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// =============================================================================
// Checks
// =============================================================================

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Required appends an error when value is blank.
func Required(errs Errors, field, value string) Errors {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: "is required"})
	}
	return errs
}

// Email appends an error when value is not a plausible email address.
// Blank values are left to Required.
func Email(errs Errors, field, value string) Errors {
	if value != "" && !emailPattern.MatchString(value) {
		return append(errs, FieldError{Field: field, Message: "must be a valid email address"})
	}
	return errs
}

// Password appends errors when the password is too weak: at least 8
// characters with a letter and a digit.
func Password(errs Errors, field, value string) Errors {
	if value == "" {
		return errs
	}
	if len(value) < 8 {
		return append(errs, FieldError{Field: field, Message: "must be at least 8 characters"})
	}
	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return append(errs, FieldError{Field: field, Message: "must contain both letters and digits"})
	}
	return errs
}

// OneOf appends an error when value is set but not a member of allowed.
func OneOf(errs Errors, field, value string, allowed ...string) Errors {
	if value == "" {
		return errs
	}
	for _, a := range allowed {
		if value == a {
			return errs
		}
	}
	return append(errs, FieldError{
		Field:   field,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	})
}
