package state

import (
	"time"

	"github.com/wasabeef/emu-sub003/internal/device"
)

// Panel identifies one of the two device list panels.
type Panel int

const (
	// PanelAndroid is the Android device list
	PanelAndroid Panel = iota
	// PanelIOS is the iOS simulator list
	PanelIOS
)

// String returns a human-readable name for the panel
func (p Panel) String() string {
	if p == PanelIOS {
		return "iOS"
	}
	return "Android"
}

// Platform maps the panel to its device platform.
func (p Panel) Platform() device.Platform {
	if p == PanelIOS {
		return device.PlatformIOS
	}
	return device.PlatformAndroid
}

// Focus identifies which screen area receives navigation keys.
type Focus int

const (
	// FocusDeviceList routes navigation to the active device panel
	FocusDeviceList Focus = iota
	// FocusLogArea routes navigation to the log viewport
	FocusLogArea
)

// Mode is the modal state of the UI. Modes are mutually exclusive.
type Mode int

const (
	// ModeNormal is the regular browsing mode
	ModeNormal Mode = iota
	// ModeCreateDevice shows the device creation form
	ModeCreateDevice
	// ModeConfirmDelete shows the delete confirmation dialog
	ModeConfirmDelete
	// ModeConfirmWipe shows the wipe confirmation dialog
	ModeConfirmWipe
	// ModeManageAPILevels shows the system image management view
	ModeManageAPILevels
	// ModeHelp shows the key binding reference
	ModeHelp
)

// NotificationType classifies a notification for styling.
type NotificationType int

const (
	NotificationSuccess NotificationType = iota
	NotificationError
	NotificationWarning
	NotificationInfo
)

// DefaultAutoDismiss is how long a non-persistent notification stays
// visible.
const DefaultAutoDismiss = 5 * time.Second

// Notification is one entry in the notification queue.
type Notification struct {
	Type      NotificationType
	Message   string
	CreatedAt time.Time
	// AutoDismissAfter of zero means the notification is persistent
	AutoDismissAfter time.Duration
}

// IsExpired reports whether the notification should be dismissed.
// Persistent notifications never expire.
func (n Notification) IsExpired(now time.Time) bool {
	if n.AutoDismissAfter == 0 {
		return false
	}
	return now.Sub(n.CreatedAt) > n.AutoDismissAfter
}

// LogLevel classifies a device log line.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// String returns a human-readable name for the log level
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return "?"
	}
}

// LogEntry is one line in the bounded log ring.
type LogEntry struct {
	Level     LogLevel
	Message   string
	Timestamp time.Time
}

// ConfirmDialog carries the target of a destructive confirmation.
type ConfirmDialog struct {
	DeviceName string
	DeviceID   string
	Platform   device.Platform
}

// DeviceDetails is the cached per-device detail view, tagged with the
// platform it was fetched for.
type DeviceDetails struct {
	Name     string
	ID       string
	Platform device.Platform
	Category string
	Version  string
	Status   device.Status
	RAMSize  string
	Storage  string
}
