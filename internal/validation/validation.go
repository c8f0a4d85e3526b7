package validation

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldValidator checks a single form field value.
type FieldValidator interface {
	// Validate returns nil when the value is acceptable
	Validate(value string) error

	// Hint returns a short description of the accepted format,
	// suitable for display next to the field
	Hint() string
}

const maxDeviceNameLength = 50

// DeviceNameValidator validates device names. Names are limited to
// letters, digits, spaces, dots, underscores, and hyphens. Android AVD
// names additionally must not start with '.' or '-'.
type DeviceNameValidator struct {
	// Android enables the Android-specific leading character rule
	Android bool
}

// Validate implements FieldValidator.
func (v DeviceNameValidator) Validate(value string) error {
	if value == "" {
		return fmt.Errorf("name must not be empty")
	}
	if len(value) > maxDeviceNameLength {
		return fmt.Errorf("name must be at most %d characters", maxDeviceNameLength)
	}
	for _, r := range value {
		if !isNameRune(r) {
			return fmt.Errorf("name contains invalid character %q", r)
		}
	}
	if v.Android && (strings.HasPrefix(value, ".") || strings.HasPrefix(value, "-")) {
		return fmt.Errorf("name must not start with '.' or '-'")
	}
	return nil
}

// Hint implements FieldValidator.
func (v DeviceNameValidator) Hint() string {
	return "letters, digits, spaces, '.', '_', '-'"
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ' || r == '.' || r == '_' || r == '-':
		return true
	default:
		return false
	}
}

// NumericRangeValidator validates an integer field within an inclusive
// range. An empty value is accepted and means "use the default".
type NumericRangeValidator struct {
	// Field is the field name used in error messages
	Field string
	// Min is the smallest accepted value
	Min int
	// Max is the largest accepted value
	Max int
	// Unit is appended to error messages (e.g. "MB")
	Unit string
}

// RAMValidator accepts RAM sizes between 512 and 8192 MB.
func RAMValidator() NumericRangeValidator {
	return NumericRangeValidator{Field: "RAM", Min: 512, Max: 8192, Unit: "MB"}
}

// StorageValidator accepts storage sizes between 1024 and 65536 MB.
func StorageValidator() NumericRangeValidator {
	return NumericRangeValidator{Field: "storage", Min: 1024, Max: 65536, Unit: "MB"}
}

// Validate implements FieldValidator.
func (v NumericRangeValidator) Validate(value string) error {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s must be a number", v.Field)
	}
	if n < v.Min || n > v.Max {
		return fmt.Errorf("%s must be between %d and %d %s", v.Field, v.Min, v.Max, v.Unit)
	}
	return nil
}

// Hint implements FieldValidator.
func (v NumericRangeValidator) Hint() string {
	return fmt.Sprintf("%d-%d %s, empty for default", v.Min, v.Max, v.Unit)
}
