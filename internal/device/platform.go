package device

import "runtime"

// Platform identifies the virtual device platform.
type Platform int

const (
	// PlatformAndroid is the Android emulator platform
	PlatformAndroid Platform = iota
	// PlatformIOS is the iOS simulator platform
	PlatformIOS
)

// String returns a human-readable name for the platform
func (p Platform) String() string {
	switch p {
	case PlatformAndroid:
		return "Android"
	case PlatformIOS:
		return "iOS"
	default:
		return "Unknown"
	}
}

// Supported reports whether the platform's tooling can exist on the
// current OS. iOS simulators require macOS; Android works everywhere
// the SDK does.
func (p Platform) Supported() bool {
	if p == PlatformIOS {
		return runtime.GOOS == "darwin"
	}
	return true
}
