package device

import "fmt"

// Status represents the current operational state of a virtual device.
type Status int

const (
	// StatusStopped means the device is shut down
	StatusStopped Status = iota
	// StatusStarting means the device is in the process of booting
	StatusStarting
	// StatusRunning means the device is running and ready for use
	StatusRunning
	// StatusStopping means the device is shutting down
	StatusStopping
	// StatusCreating means the device is being created
	StatusCreating
	// StatusError means the device is in an error state
	StatusError
	// StatusUnknown means the device status cannot be determined
	StatusUnknown
)

// String returns a human-readable name for the status
func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "Stopped"
	case StatusStarting:
		return "Starting"
	case StatusRunning:
		return "Running"
	case StatusStopping:
		return "Stopping"
	case StatusCreating:
		return "Creating"
	case StatusError:
		return "Error"
	case StatusUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalJSON serializes the status as its string name so the on-disk
// cache stays readable and stable across reorderings of the enum.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses a status from its string name. Unrecognized
// values map to StatusUnknown rather than failing the whole document.
func (s *Status) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		name = name[1 : len(name)-1]
	}
	switch name {
	case "Stopped":
		*s = StatusStopped
	case "Starting":
		*s = StatusStarting
	case "Running":
		*s = StatusRunning
	case "Stopping":
		*s = StatusStopping
	case "Creating":
		*s = StatusCreating
	case "Error":
		*s = StatusError
	default:
		*s = StatusUnknown
	}
	return nil
}

// Device is the common interface for all virtual device types. It
// provides unified access to device properties across platforms.
type Device interface {
	// ID returns the unique identifier for the device (AVD name for
	// Android, UDID for iOS)
	ID() string

	// Name returns the display name of the device
	Name() string

	// Status returns the current status of the device
	Status() Status

	// IsRunning returns whether the device is currently running
	IsRunning() bool
}

// AndroidDevice represents an Android Virtual Device (AVD).
type AndroidDevice struct {
	// AVDName is the AVD name, which is also the unique identifier
	AVDName string `json:"name"`
	// DeviceType is the device type identifier (e.g. "pixel_7")
	DeviceType string `json:"device_type"`
	// APILevel is the Android API level (e.g. 34 for Android 14)
	APILevel int `json:"api_level"`
	// State is the current device status
	State Status `json:"status"`
	// Running reports whether the emulator is currently running
	Running bool `json:"is_running"`
	// RAMSize is the RAM allocation in MB (e.g. "2048")
	RAMSize string `json:"ram_size"`
	// StorageSize is the storage size in MB (e.g. "8192")
	StorageSize string `json:"storage_size"`
}

// ID implements Device. Android devices are identified by AVD name.
func (d *AndroidDevice) ID() string { return d.AVDName }

// Name implements Device.
func (d *AndroidDevice) Name() string { return d.AVDName }

// Status implements Device.
func (d *AndroidDevice) Status() Status { return d.State }

// IsRunning implements Device.
func (d *AndroidDevice) IsRunning() bool { return d.Running }

// SetStatus updates the status and keeps Running consistent with it.
func (d *AndroidDevice) SetStatus(s Status) {
	d.State = s
	d.Running = s == StatusRunning
}

// IOSDevice represents an iOS Simulator device.
type IOSDevice struct {
	// DisplayName is the simulator's display name
	DisplayName string `json:"name"`
	// UDID is the stable unique device identifier
	UDID string `json:"udid"`
	// DeviceType is the device type identifier
	DeviceType string `json:"device_type"`
	// IOSVersion is the iOS version number (e.g. "17.0")
	IOSVersion string `json:"ios_version"`
	// RuntimeVersion is the full runtime version string
	RuntimeVersion string `json:"runtime_version"`
	// State is the current device status
	State Status `json:"status"`
	// Running reports whether the simulator is currently booted
	Running bool `json:"is_running"`
	// Available reports whether the device is usable (not corrupted)
	Available bool `json:"is_available"`
}

// ID implements Device. iOS devices are identified by UDID.
func (d *IOSDevice) ID() string { return d.UDID }

// Name implements Device.
func (d *IOSDevice) Name() string { return d.DisplayName }

// Status implements Device.
func (d *IOSDevice) Status() Status { return d.State }

// IsRunning implements Device.
func (d *IOSDevice) IsRunning() bool { return d.Running }

// SetStatus updates the status and keeps Running consistent with it.
func (d *IOSDevice) SetStatus(s Status) {
	d.State = s
	d.Running = s == StatusRunning
}
