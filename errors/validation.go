// errors/validation.go
package errors

import "fmt"

// ValidationError names the specific input that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MissingField builds the validation error for an absent or empty required
// field.
func MissingField(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Missing required field: %s", field),
	}
}

// InvalidField builds a validation error for a present but malformed value.
func InvalidField(field, reason string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("Invalid field %s: %s", field, reason),
	}
}
