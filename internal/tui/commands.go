package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/manager"
)

// operationTimeout bounds every lifecycle command fired from a key
// handler.
const operationTimeout = 2 * time.Minute

// refreshDevicesCmd lists both platforms. A missing manager (iOS on
// Linux) contributes an empty list, not an error.
func (m *Model) refreshDevicesCmd() tea.Cmd {
	android := m.androidManager
	ios := m.iosManager
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		var msg devicesLoadedMsg
		if android != nil {
			devices, err := android.ListDevices(ctx)
			msg.androidErr = err
			msg.android = asAndroid(devices)
		}
		if ios != nil {
			devices, err := ios.ListDevices(ctx)
			msg.iosErr = err
			msg.ios = asIOS(devices)
		}
		return msg
	}
}

func asAndroid(devices []device.Device) []*device.AndroidDevice {
	var out []*device.AndroidDevice
	for _, d := range devices {
		if a, ok := d.(*device.AndroidDevice); ok {
			out = append(out, a)
		}
	}
	return out
}

func asIOS(devices []device.Device) []*device.IOSDevice {
	var out []*device.IOSDevice
	for _, d := range devices {
		if i, ok := d.(*device.IOSDevice); ok {
			out = append(out, i)
		}
	}
	return out
}

// loadCachedDevicesCmd paints the last saved device lists before the
// first live refresh lands.
func (m *Model) loadCachedDevicesCmd() tea.Cmd {
	disk := m.diskCache
	return func() tea.Msg {
		android, ios, ok := disk.Load()
		if !ok {
			return nil
		}
		// Cached running flags are stale by definition.
		for _, d := range android {
			d.SetStatus(device.StatusUnknown)
		}
		for _, d := range ios {
			d.SetStatus(device.StatusUnknown)
		}
		return devicesLoadedMsg{android: android, ios: ios, fromCache: true}
	}
}

// refreshCatalogCmd fetches one platform's catalogs for the metadata
// cache and the create form.
func (m *Model) refreshCatalogCmd(mgr manager.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		types, err := mgr.ListDeviceTypes(ctx)
		if err != nil {
			return catalogLoadedMsg{platform: mgr.Platform(), err: err}
		}
		versions, err := mgr.ListOSVersions(ctx)
		if err != nil {
			return catalogLoadedMsg{platform: mgr.Platform(), err: err}
		}
		return catalogLoadedMsg{
			platform:    mgr.Platform(),
			deviceTypes: types,
			osVersions:  versions,
		}
	}
}

// deviceOpCmd runs one lifecycle operation and reports the outcome.
func deviceOpCmd(mgr manager.DeviceManager, action, id string, op func(context.Context, string) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		err := op(ctx, id)
		return operationDoneMsg{
			action:   action,
			device:   id,
			platform: mgr.Platform(),
			err:      err,
		}
	}
}

// createDeviceCmd runs device creation from a completed form.
func createDeviceCmd(mgr manager.DeviceManager, cfg device.Config) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
		defer cancel()

		err := mgr.CreateDevice(ctx, cfg)
		return operationDoneMsg{
			action:   "create",
			device:   cfg.Name,
			platform: mgr.Platform(),
			err:      err,
		}
	}
}
