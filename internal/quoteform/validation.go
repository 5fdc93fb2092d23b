package quoteform

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrorKind names why a field failed validation.
type ErrorKind string

const (
	Required          ErrorKind = "required"
	RequiredSelection ErrorKind = "required_selection"
	MustAgree         ErrorKind = "must_agree"
	InvalidFormat     ErrorKind = "invalid_format"
	InvalidEmail      ErrorKind = "invalid_email"
	InvalidPhone      ErrorKind = "invalid_phone"
)

var errorMessages = map[ErrorKind]string{
	Required:          "This field is required",
	RequiredSelection: "Please select an option",
	MustAgree:         "You must agree to the terms",
	InvalidFormat:     "Please enter a valid 5-digit zip code",
	InvalidEmail:      "Email is invalid",
	InvalidPhone:      "Phone is invalid",
}

// Message is the inline text shown next to the field.
func (k ErrorKind) Message() string {
	if msg, ok := errorMessages[k]; ok {
		return msg
	}
	return string(k)
}

var (
	emailPattern      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	postalCodePattern = regexp.MustCompile(`^\d{5}$`)
)

// ValidEmail reports whether s has the local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidPhone reports whether s holds exactly ten digits once non-digits are dropped.
func ValidPhone(s string) bool {
	return len(digitsOnly(s)) == phoneLength
}

// ValidPostalCode reports whether s is exactly five digits.
func ValidPostalCode(s string) bool {
	return postalCodePattern.MatchString(s)
}

// FieldErrors maps field ids to the failure recorded for them.
type FieldErrors map[string]ErrorKind

// ValidationError lists every failing field of a step.
type ValidationError struct {
	Step   int
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	ids := make([]string, 0, len(e.Fields))
	for id := range e.Fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id + ": " + string(e.Fields[id])
	}
	return fmt.Sprintf("quoteform: step %d invalid (%s)", e.Step, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// checkField returns the failure for one field value, or "" when it passes.
// An empty required value reports the presence rule. Otherwise a formatted
// field is always judged by its format, even when optional and empty.
func checkField(f FieldDescriptor, value string) ErrorKind {
	switch f.Kind {
	case KindRadio:
		if f.Required && value == "" {
			return RequiredSelection
		}
		return ""
	case KindCheckbox:
		if f.Required && value != checkedValue {
			return MustAgree
		}
		return ""
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if f.Required {
			return Required
		}
		if f.Format == FormatNone {
			return ""
		}
	}
	switch f.Format {
	case FormatPostalCode:
		if !ValidPostalCode(value) {
			return InvalidFormat
		}
	case FormatEmail:
		if !ValidEmail(value) {
			return InvalidEmail
		}
	case FormatPhone:
		if !ValidPhone(value) {
			return InvalidPhone
		}
	}
	return ""
}
