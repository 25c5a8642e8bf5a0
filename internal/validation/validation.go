package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
	ErrEmptyValue  = fmt.Errorf("value cannot be empty")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateNonEmpty checks that a required string field carries a value.
// The field name is included in the error for API responses.
func ValidateNonEmpty(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrEmptyValue, field)
	}
	return nil
}
