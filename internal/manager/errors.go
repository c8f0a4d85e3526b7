package manager

import (
	"fmt"
	"strings"
)

// Error types for device manager operations

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeToolNotFound indicates a required platform tool is missing
	ErrTypeToolNotFound ErrorType = iota
	// ErrTypeCommandFailed indicates an external command returned an error
	ErrTypeCommandFailed
	// ErrTypeParse indicates tool output could not be parsed
	ErrTypeParse
	// ErrTypeNotFound indicates the requested device does not exist
	ErrTypeNotFound
	// ErrTypeValidation indicates invalid input (name, config)
	ErrTypeValidation
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeToolNotFound:
		return "Tool Not Found"
	case ErrTypeCommandFailed:
		return "Command Failed"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeNotFound:
		return "Device Not Found"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// ManagerError represents an error from a device manager operation
type ManagerError struct {
	Type    ErrorType // Category of error
	Message string    // Human-readable error message
	Device  string    // Device name or identifier (for context)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface
func (e *ManagerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *ManagerError) Unwrap() error {
	return e.Err
}

// NewToolNotFoundError creates an error for a missing platform tool
func NewToolNotFoundError(message string) *ManagerError {
	return &ManagerError{
		Type:    ErrTypeToolNotFound,
		Message: message,
	}
}

// NewCommandFailedError creates an error for a failed external command
func NewCommandFailedError(message, device string, err error) *ManagerError {
	return &ManagerError{
		Type:    ErrTypeCommandFailed,
		Message: message,
		Device:  device,
		Err:     err,
	}
}

// NewParseError creates an error for unparseable tool output
func NewParseError(message string, err error) *ManagerError {
	return &ManagerError{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates an error for a device that does not exist
func NewNotFoundError(device string) *ManagerError {
	return &ManagerError{
		Type:    ErrTypeNotFound,
		Message: fmt.Sprintf("device %q not found", device),
		Device:  device,
	}
}

// NewValidationError creates an error for invalid input
func NewValidationError(message string) *ManagerError {
	return &ManagerError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

// IsToolNotFound checks if an error indicates missing platform tooling
func IsToolNotFound(err error) bool {
	if mErr, ok := err.(*ManagerError); ok {
		return mErr.Type == ErrTypeToolNotFound
	}
	return false
}

// IsCommandFailed checks if an error is a failed external command
func IsCommandFailed(err error) bool {
	if mErr, ok := err.(*ManagerError); ok {
		return mErr.Type == ErrTypeCommandFailed
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if mErr, ok := err.(*ManagerError); ok {
		return mErr.Type == ErrTypeParse
	}
	return false
}

// IsNotFound checks if an error indicates a missing device
func IsNotFound(err error) bool {
	if mErr, ok := err.(*ManagerError); ok {
		return mErr.Type == ErrTypeNotFound
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if mErr, ok := err.(*ManagerError); ok {
		return mErr.Type == ErrTypeValidation
	}
	return false
}

// UserMessage returns a concise, actionable message for an error,
// mapping well-known platform tool failure text to one-liners.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	text := err.Error()
	switch {
	case strings.Contains(text, "licenses have not been accepted"),
		strings.Contains(text, "accept the SDK license"):
		return "SDK licenses not accepted. Run: sdkmanager --licenses"
	case strings.Contains(text, "Package path is not valid"),
		strings.Contains(text, "no system image"):
		return "System image not installed. Install it with sdkmanager first."
	case strings.Contains(text, "already exists"):
		return "A device with this name already exists."
	case strings.Contains(text, "Invalid device type"):
		return "Unknown device type. Refresh the device catalog."
	case strings.Contains(text, "Unable to locate a Java Runtime"),
		strings.Contains(text, "JAVA_HOME"):
		return "Java runtime not found. Install a JDK and set JAVA_HOME."
	}

	mErr, ok := err.(*ManagerError)
	if !ok {
		return text
	}

	switch mErr.Type {
	case ErrTypeToolNotFound:
		return mErr.Message
	case ErrTypeNotFound:
		return fmt.Sprintf("Device %q not found. It may have been deleted.", mErr.Device)
	case ErrTypeValidation:
		return mErr.Message
	case ErrTypeParse:
		return "Could not read tool output. The platform tools may be outdated."
	case ErrTypeCommandFailed:
		if mErr.Device != "" {
			return fmt.Sprintf("Operation failed for %q: %s", mErr.Device, mErr.Message)
		}
		return mErr.Message
	default:
		return mErr.Message
	}
}
