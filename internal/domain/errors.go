package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every entity and patch validation failure.
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func validateDay(field, day string) error {
	if !IsValidDay(day) {
		return invalid("%s must be a YYYY-MM-DD date, got %q", field, day)
	}
	return nil
}
