package exec

import (
	"errors"
	"fmt"
	"strings"
)

// CommandError describes a failed external command: the process exited
// non-zero, could not be spawned, or timed out.
type CommandError struct {
	Program  string
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

// Error implements the error interface
func (e *CommandError) Error() string {
	cmd := e.Program
	if len(e.Args) > 0 {
		cmd = fmt.Sprintf("%s %s", e.Program, strings.Join(e.Args, " "))
	}
	if e.Err != nil {
		return fmt.Sprintf("command failed: %s: %v: %s", cmd, e.Err, strings.TrimSpace(e.Output))
	}
	return fmt.Sprintf("command failed with exit code %d: %s: %s", e.ExitCode, cmd, strings.TrimSpace(e.Output))
}

// Unwrap returns the underlying error for error chain inspection
func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError reports whether err is (or wraps) a *CommandError.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// matchesIgnorePattern reports whether the failure text contains any of
// the given substrings. Used by RunIgnoringErrors to reclassify
// "already in that state" failures as successful no-ops.
func matchesIgnorePattern(errText string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(errText, p) {
			return true
		}
	}
	return false
}
