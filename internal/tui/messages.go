package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/manager"
)

// tickMsg drives auto-refresh, notification expiry, and navigation
// batch flushing.
type tickMsg time.Time

// devicesLoadedMsg carries the result of a device listing refresh.
// Errors are per platform: one platform's listing failing must not
// discard the other's result, nor the failed platform's previous list.
type devicesLoadedMsg struct {
	android    []*device.AndroidDevice
	ios        []*device.IOSDevice
	androidErr error
	iosErr     error
	fromCache  bool
}

// catalogLoadedMsg carries refreshed metadata catalogs.
type catalogLoadedMsg struct {
	platform    device.Platform
	deviceTypes []manager.CatalogEntry
	osVersions  []manager.CatalogEntry
	err         error
}

// operationDoneMsg reports a completed lifecycle operation.
type operationDoneMsg struct {
	action   string
	device   string
	platform device.Platform
	err      error
}

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
