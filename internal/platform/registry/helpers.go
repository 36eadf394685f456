package registry

import (
	"time"

	"fraudtect/internal/core/domain"
	"fraudtect/internal/platform/errors"
)

// Validation helpers for service factories. Every error wraps domain.ErrInvalidConfig.

// ValidateRequiredString validates that a required string field is not empty.
func ValidateRequiredString(fieldName, value string) error {
	if value == "" {
		return errors.Errorf("%w: %s is required and cannot be empty", domain.ErrInvalidConfig, fieldName)
	}
	return nil
}

// ValidatePositiveInt validates that an int field is positive (> 0).
func ValidatePositiveInt(fieldName string, value int) error {
	if value <= 0 {
		return errors.Errorf("%w: %s must be positive, got %d", domain.ErrInvalidConfig, fieldName, value)
	}
	return nil
}

// ValidateNonNegativeInt validates that an int field is non-negative (>= 0).
func ValidateNonNegativeInt(fieldName string, value int) error {
	if value < 0 {
		return errors.Errorf("%w: %s cannot be negative, got %d", domain.ErrInvalidConfig, fieldName, value)
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is not negative.
// Zero is accepted: the factories replace it with their default.
func ValidateNonNegativeDuration(fieldName string, value time.Duration) error {
	if value < 0 {
		return errors.Errorf("%w: %s cannot be negative, got %v", domain.ErrInvalidConfig, fieldName, value)
	}
	return nil
}
