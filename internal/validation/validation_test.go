package validation

import (
	"strings"
	"testing"
)

func TestDeviceNameValidator(t *testing.T) {
	tests := []struct {
		name    string
		android bool
		value   string
		wantErr bool
	}{
		{"simple name", false, "My Device", false},
		{"avd style name", true, "Pixel_7_API_34", false},
		{"dots and hyphens", false, "test.device-1", false},
		{"empty rejected", false, "", true},
		{"too long rejected", false, strings.Repeat("a", 51), true},
		{"max length accepted", false, strings.Repeat("a", 50), false},
		{"slash rejected", false, "my/device", true},
		{"unicode rejected", false, "デバイス", true},
		{"android leading dot rejected", true, ".hidden", true},
		{"android leading hyphen rejected", true, "-flag", true},
		{"ios leading dot allowed", false, ".hidden", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := DeviceNameValidator{Android: tt.android}
			err := v.Validate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestNumericRangeValidator(t *testing.T) {
	tests := []struct {
		name      string
		validator NumericRangeValidator
		value     string
		wantErr   bool
	}{
		{"ram in range", RAMValidator(), "2048", false},
		{"ram at min", RAMValidator(), "512", false},
		{"ram at max", RAMValidator(), "8192", false},
		{"ram below min", RAMValidator(), "256", true},
		{"ram above max", RAMValidator(), "16384", true},
		{"empty means default", RAMValidator(), "", false},
		{"not a number", RAMValidator(), "lots", true},
		{"storage in range", StorageValidator(), "8192", false},
		{"storage below min", StorageValidator(), "512", true},
		{"whitespace trimmed", StorageValidator(), " 2048 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator.Validate(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestHints(t *testing.T) {
	if (DeviceNameValidator{}).Hint() == "" {
		t.Error("DeviceNameValidator.Hint() is empty")
	}
	if RAMValidator().Hint() == "" {
		t.Error("RAMValidator().Hint() is empty")
	}
}
