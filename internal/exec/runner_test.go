package exec

import (
	"errors"
	"strings"
	"testing"
)

func TestCommandError_Message(t *testing.T) {
	err := &CommandError{
		Program:  "avdmanager",
		Args:     []string{"list", "avd"},
		ExitCode: 1,
		Output:   "Error: Android SDK not found\n",
	}

	msg := err.Error()
	for _, want := range []string{"avdmanager list avd", "exit code 1", "Android SDK not found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, want it to contain %q", msg, want)
		}
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	underlying := errors.New("no such file or directory")
	err := &CommandError{Program: "xcrun", Err: underlying}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is() = false, want CommandError to unwrap to its cause")
	}
}

func TestMatchesIgnorePattern(t *testing.T) {
	tests := []struct {
		name     string
		errText  string
		patterns []string
		want     bool
	}{
		{
			name:     "substring match",
			errText:  "Unable to shutdown device in current state: Shutdown",
			patterns: []string{"current state: Shutdown"},
			want:     true,
		},
		{
			name:     "second pattern matches",
			errText:  "Unable to boot device in current state: Booted",
			patterns: []string{"current state: Shutdown", "current state: Booted"},
			want:     true,
		},
		{
			name:     "no match",
			errText:  "Invalid device type",
			patterns: []string{"current state: Booted"},
			want:     false,
		},
		{
			name:     "empty pattern never matches",
			errText:  "anything",
			patterns: []string{""},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesIgnorePattern(tt.errText, tt.patterns); got != tt.want {
				t.Errorf("matchesIgnorePattern(%q, %v) = %v, want %v", tt.errText, tt.patterns, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout <= 0 {
		t.Errorf("DefaultConfig().Timeout = %v, want positive", cfg.Timeout)
	}
}
