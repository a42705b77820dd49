package domain

import (
	"fmt"
	"sort"
	"strings"
)

// NonFieldErrors collects violations that span more than one field.
const NonFieldErrors = "non_field_errors"

const (
	MsgRequired      = "This field is required."
	MsgBlank         = "This field may not be blank."
	MsgFutureDate    = "Start date must be a future date."
	MsgSameLocations = "Start and end locations cannot be the same."
)

// ValidationError carries every violation found in a payload, keyed by the
// JSON field name.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends msg to the violations of field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// HasErrors reports whether at least one violation was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
