// Package apperrors defines the failure kinds the HTTP layer knows how to
// translate. Anything that is not one of these surfaces as a 500.
package apperrors

import "fmt"

// NotFoundError is returned when no product exists with the given id.
type NotFoundError struct {
	ID uint
}

// NotFound builds a NotFoundError for id.
func NotFound(id uint) *NotFoundError {
	return &NotFoundError{ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product not found with id: %d", e.ID)
}

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Details map[string]string
}

// Validation builds a ValidationError from a field to message map.
func Validation(details map[string]string) *ValidationError {
	return &ValidationError{Details: details}
}

// InvalidField is shorthand for a ValidationError on a single field.
func InvalidField(field, message string) *ValidationError {
	return &ValidationError{Details: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}
