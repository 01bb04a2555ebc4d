package models

import (
	"errors"
	"sort"
	"strings"
)

// ValidationErrors maps a field name to a human readable reason. It is returned
// by the Validate methods and rendered as a 400 body by the HTTP layer.
type ValidationErrors map[string]string

// Add records msg for field unless the field already carries an error.
func (v ValidationErrors) Add(field, msg string) {
	if _, exists := v[field]; !exists {
		v[field] = msg
	}
}

// Err returns nil when no errors were recorded.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into ValidationErrors when possible.
func AsValidation(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// FieldError is shorthand for a single-field validation failure.
func FieldError(field, msg string) error {
	return ValidationErrors{field: msg}
}
