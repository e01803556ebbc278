package validation

import (
	"fmt"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID = fmt.Errorf("invalid UUID format")
)

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateCurrency checks that a currency code looks like an ISO 4217 code:
// exactly three ASCII letters.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("invalid currency code: %s", code)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return fmt.Errorf("invalid currency code: %s", code)
		}
	}
	return nil
}
