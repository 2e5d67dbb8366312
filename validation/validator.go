// Package validation validates task configuration documents: field-level
// checks through a fluent Validator, struct-tag validation for declaration
// structs, and the document-level invariants (name format, identifier
// format, uniqueness) the engine enforces before scheduling.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pixpilot/scaffoldfy-sub003/errors"
)

var (
	// namePattern is the kebab-case configuration name invariant.
	namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	// identifierPattern is the variable/prompt id invariant.
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{errors: make([]FieldError, 0)}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an AppError if there are validation errors, nil otherwise.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := errors.Validation(strings.Join(messages, "; "))
	appErr.Details = map[string]any{"fields": v.errors}
	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Name checks the kebab-case configuration name format.
func (v *Validator) Name(field, value string) *Validator {
	if value == "" {
		return v
	}
	if !namePattern.MatchString(value) {
		v.AddError(field, "must be kebab-case (lowercase letters, digits, single hyphens)")
	}
	return v
}

// Identifier checks the variable/prompt id format.
func (v *Validator) Identifier(field, value string) *Validator {
	if value == "" {
		return v
	}
	if !identifierPattern.MatchString(value) {
		v.AddError(field, "must be a legal identifier (letters, digits, _, $; not starting with a digit)")
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// ValidName reports whether a configuration name satisfies the invariant.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ValidIdentifier reports whether an id is a legal identifier.
func ValidIdentifier(id string) bool {
	return identifierPattern.MatchString(id)
}
