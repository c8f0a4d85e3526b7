package manager

import (
	"context"

	"github.com/wasabeef/emu-sub003/internal/device"
)

// CatalogEntry is one row of a device type or OS version catalog.
type CatalogEntry struct {
	// ID is the identifier passed back to the platform tool
	ID string `json:"id"`
	// Display is the human-readable name
	Display string `json:"display"`
}

// DeviceManager is the uniform lifecycle contract implemented by both
// platform managers. Every operation accepts either the device's
// display name or its manager-assigned identifier; callers never need
// to know which form they hold.
type DeviceManager interface {
	// Platform returns the platform this manager drives
	Platform() device.Platform

	// IsAvailable reports whether the platform tooling is usable on
	// this machine
	IsAvailable(ctx context.Context) bool

	// ListDevices returns all devices known to the platform with
	// running state resolved, in display priority order
	ListDevices(ctx context.Context) ([]device.Device, error)

	// ListDeviceTypes returns the device type catalog
	ListDeviceTypes(ctx context.Context) ([]CatalogEntry, error)

	// ListOSVersions returns the installed OS versions: API levels
	// for Android, simulator runtimes for iOS
	ListOSVersions(ctx context.Context) ([]CatalogEntry, error)

	// CreateDevice creates a new device from the config
	CreateDevice(ctx context.Context, cfg device.Config) error

	// StartDevice boots the device
	StartDevice(ctx context.Context, id string) error

	// StopDevice shuts the device down
	StopDevice(ctx context.Context, id string) error

	// WipeDevice erases the device's user data
	WipeDevice(ctx context.Context, id string) error

	// DeleteDevice removes the device definition entirely
	DeleteDevice(ctx context.Context, id string) error
}
