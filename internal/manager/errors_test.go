package manager

import (
	"errors"
	"strings"
	"testing"
)

func TestManagerError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("exit code 1")
	err := NewCommandFailedError("failed to boot simulator", "iPhone 15", cause)

	if !strings.Contains(err.Error(), "failed to boot simulator") {
		t.Errorf("Error() = %q, want it to contain the message", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is() = false, want ManagerError to unwrap to its cause")
	}
}

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		predicate func(error) bool
		want      bool
	}{
		{"not found matches", NewNotFoundError("x"), IsNotFound, true},
		{"not found is not validation", NewNotFoundError("x"), IsValidationError, false},
		{"validation matches", NewValidationError("bad"), IsValidationError, true},
		{"tool not found matches", NewToolNotFoundError("no sdk"), IsToolNotFound, true},
		{"command failed matches", NewCommandFailedError("boom", "", nil), IsCommandFailed, true},
		{"parse matches", NewParseError("bad output", nil), IsParseError, true},
		{"plain error matches nothing", errors.New("plain"), IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.predicate(tt.err); got != tt.want {
				t.Errorf("predicate(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "license failure",
			err:  NewCommandFailedError("create failed", "x", errors.New("Error: licenses have not been accepted")),
			want: "sdkmanager --licenses",
		},
		{
			name: "missing system image",
			err:  NewCommandFailedError("create failed", "x", errors.New("Error: Package path is not valid")),
			want: "System image not installed",
		},
		{
			name: "duplicate name",
			err:  NewCommandFailedError("create failed", "x", errors.New("Error: AVD 'x' already exists")),
			want: "already exists",
		},
		{
			name: "invalid device type",
			err:  NewCommandFailedError("create failed", "x", errors.New("Invalid device type: iPhone 99")),
			want: "Refresh the device catalog",
		},
		{
			name: "not found",
			err:  NewNotFoundError("Pixel_7"),
			want: "not found",
		},
		{
			name: "plain error passes through",
			err:  errors.New("something odd"),
			want: "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMessage(tt.err)
			if !strings.Contains(got, tt.want) {
				t.Errorf("UserMessage() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage_Nil(t *testing.T) {
	if got := UserMessage(nil); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
}
