package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wasabeef/emu-sub003/internal/cache"
	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/manager"
	"github.com/wasabeef/emu-sub003/internal/state"
)

func newTestModel() *Model {
	return New(Options{DiskCache: cache.NewDisabledDiskCache()})
}

// fakeManager is a scriptable DeviceManager for update-loop tests.
type fakeManager struct {
	platform    device.Platform
	devices     []device.Device
	listErr     error
	deviceTypes []manager.CatalogEntry
	osVersions  []manager.CatalogEntry
	created     []device.Config
}

func (f *fakeManager) Platform() device.Platform { return f.platform }

func (f *fakeManager) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeManager) ListDevices(ctx context.Context) ([]device.Device, error) {
	return f.devices, f.listErr
}

func (f *fakeManager) ListDeviceTypes(ctx context.Context) ([]manager.CatalogEntry, error) {
	return f.deviceTypes, nil
}

func (f *fakeManager) ListOSVersions(ctx context.Context) ([]manager.CatalogEntry, error) {
	return f.osVersions, nil
}

func (f *fakeManager) CreateDevice(ctx context.Context, cfg device.Config) error {
	f.created = append(f.created, cfg)
	return nil
}

func (f *fakeManager) StartDevice(ctx context.Context, id string) error { return nil }

func (f *fakeManager) StopDevice(ctx context.Context, id string) error { return nil }

func (f *fakeManager) WipeDevice(ctx context.Context, id string) error { return nil }

func (f *fakeManager) DeleteDevice(ctx context.Context, id string) error { return nil }

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testDevices() []*device.AndroidDevice {
	return []*device.AndroidDevice{
		{AVDName: "Pixel_7_API_34", APILevel: 34, State: device.StatusStopped},
		{AVDName: "Pixel_Tablet_API_33", APILevel: 33, State: device.StatusStopped},
	}
}

func TestModel_DevicesLoadedPopulatesState(t *testing.T) {
	m := newTestModel()

	m.Update(devicesLoadedMsg{android: testDevices()})

	snap := m.State().Snapshot()
	if len(snap.Android) != 2 {
		t.Fatalf("android devices = %d, want 2", len(snap.Android))
	}
	if snap.Android[0].AVDName != "Pixel_7_API_34" {
		t.Errorf("first device = %q, want Pixel_7_API_34", snap.Android[0].AVDName)
	}
}

func TestModel_CacheNeverOverwritesLiveData(t *testing.T) {
	m := newTestModel()

	m.Update(devicesLoadedMsg{android: testDevices()})
	m.Update(devicesLoadedMsg{
		android:   []*device.AndroidDevice{{AVDName: "Stale_Cached_AVD"}},
		fromCache: true,
	})

	snap := m.State().Snapshot()
	if len(snap.Android) != 2 || snap.Android[0].AVDName != "Pixel_7_API_34" {
		t.Errorf("live data replaced by cache snapshot: %+v", snap.Android)
	}
}

func TestModel_CachePaintsEmptyState(t *testing.T) {
	m := newTestModel()

	m.Update(devicesLoadedMsg{
		android:   []*device.AndroidDevice{{AVDName: "Cached_AVD", State: device.StatusUnknown}},
		fromCache: true,
	})

	snap := m.State().Snapshot()
	if len(snap.Android) != 1 || snap.Android[0].AVDName != "Cached_AVD" {
		t.Errorf("cache snapshot not applied to an empty state: %+v", snap.Android)
	}
}

func TestModel_TabSwitchesPanel(t *testing.T) {
	m := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.State().ActivePanel(); got != state.PanelIOS {
		t.Errorf("ActivePanel() = %v after tab, want PanelIOS", got)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := m.State().ActivePanel(); got != state.PanelAndroid {
		t.Errorf("ActivePanel() = %v after second tab, want PanelAndroid", got)
	}
}

func TestModel_DeleteOpensConfirmAndCancelCloses(t *testing.T) {
	m := newTestModel()
	m.Update(devicesLoadedMsg{android: testDevices()})

	m.Update(keyPress('d'))
	if got := m.State().Mode(); got != state.ModeConfirmDelete {
		t.Fatalf("Mode() = %v after d, want ModeConfirmDelete", got)
	}
	dialog := m.State().ConfirmDialog()
	if dialog == nil || dialog.DeviceName != "Pixel_7_API_34" {
		t.Fatalf("ConfirmDialog() = %+v, want the selected device", dialog)
	}

	m.Update(keyPress('n'))
	if got := m.State().Mode(); got != state.ModeNormal {
		t.Errorf("Mode() = %v after cancel, want ModeNormal", got)
	}
}

func TestModel_HelpModeSwallowsQuit(t *testing.T) {
	m := newTestModel()

	m.Update(keyPress('?'))
	if got := m.State().Mode(); got != state.ModeHelp {
		t.Fatalf("Mode() = %v after ?, want ModeHelp", got)
	}

	// q closes the overlay instead of quitting.
	_, cmd := m.Update(keyPress('q'))
	if cmd != nil {
		t.Error("Update(q) in help mode returned a command, want nil")
	}
	if got := m.State().Mode(); got != state.ModeNormal {
		t.Errorf("Mode() = %v after q in help, want ModeNormal", got)
	}

	_, cmd = m.Update(keyPress('q'))
	if cmd == nil {
		t.Fatal("Update(q) in normal mode returned nil, want quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Update(q) command = %T, want tea.QuitMsg", cmd())
	}
}

func TestModel_PendingStartCompletesOnRunningListing(t *testing.T) {
	m := newTestModel()
	m.State().SetPendingDeviceStart("Pixel_7_API_34")

	running := testDevices()
	running[0].SetStatus(device.StatusRunning)
	m.Update(devicesLoadedMsg{android: running})

	if got := m.State().PendingDeviceStart(); got != "" {
		t.Errorf("PendingDeviceStart() = %q after the device came up, want empty", got)
	}
	notes := m.State().Notifications()
	if len(notes) == 0 || notes[0].Type != state.NotificationSuccess {
		t.Errorf("notifications = %+v, want a success entry", notes)
	}
}

func TestModel_OperationErrorIsPersistentNotification(t *testing.T) {
	m := newTestModel()

	m.Update(operationDoneMsg{
		action: "start",
		device: "Pixel_7_API_34",
		err:    errTest("boom"),
	})

	notes := m.State().Notifications()
	if len(notes) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notes))
	}
	if notes[0].Type != state.NotificationError {
		t.Errorf("notification type = %v, want error", notes[0].Type)
	}
	if notes[0].AutoDismissAfter != 0 {
		t.Errorf("AutoDismissAfter = %v, want 0 (persistent)", notes[0].AutoDismissAfter)
	}
}

func TestModel_ViewRendersWithoutManagers(t *testing.T) {
	m := newTestModel()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(devicesLoadedMsg{android: testDevices()})

	out := m.View()
	if out == "" {
		t.Fatal("View() returned an empty string")
	}

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 40})
	if out := m.View(); out == "" {
		t.Error("View() empty for a narrow terminal, want a width warning")
	}
}

func TestModel_FailedRefreshPreservesDeviceLists(t *testing.T) {
	android := &fakeManager{
		platform: device.PlatformAndroid,
		devices:  []device.Device{&device.AndroidDevice{AVDName: "Pixel_7_API_34", APILevel: 34}},
	}
	m := New(Options{Android: android, DiskCache: cache.NewDisabledDiskCache()})

	m.Update(m.refreshDevicesCmd()())
	if snap := m.State().Snapshot(); len(snap.Android) != 1 {
		t.Fatalf("setup: android devices = %d, want 1", len(snap.Android))
	}

	android.listErr = errTest("adb exploded")
	m.Update(m.refreshDevicesCmd()())

	snap := m.State().Snapshot()
	if len(snap.Android) != 1 || snap.Android[0].AVDName != "Pixel_7_API_34" {
		t.Errorf("android devices after failed refresh = %+v, want the previous list kept", snap.Android)
	}
	notes := m.State().Notifications()
	if len(notes) == 0 || notes[len(notes)-1].Type != state.NotificationError {
		t.Errorf("notifications = %+v, want an error entry for the failed refresh", notes)
	}
}

func TestModel_FailedPlatformDoesNotBlockTheOther(t *testing.T) {
	android := &fakeManager{
		platform: device.PlatformAndroid,
		listErr:  errTest("adb exploded"),
	}
	ios := &fakeManager{
		platform: device.PlatformIOS,
		devices:  []device.Device{&device.IOSDevice{DisplayName: "iPhone 15 Pro", UDID: "AAAAAAAA-1111-2222-3333-444444444444"}},
	}
	m := New(Options{Android: android, IOS: ios, DiskCache: cache.NewDisabledDiskCache()})

	m.Update(m.refreshDevicesCmd()())

	snap := m.State().Snapshot()
	if len(snap.IOS) != 1 {
		t.Errorf("ios devices = %d, want 1 despite the android failure", len(snap.IOS))
	}
}

func TestModel_SecondPlatformFormOpenRefreshesItsCatalog(t *testing.T) {
	android := &fakeManager{
		platform:    device.PlatformAndroid,
		deviceTypes: []manager.CatalogEntry{{ID: "pixel_7", Display: "Pixel 7"}},
		osVersions:  []manager.CatalogEntry{{ID: "34", Display: "API 34"}},
	}
	ios := &fakeManager{
		platform:    device.PlatformIOS,
		deviceTypes: []manager.CatalogEntry{{ID: "iPhone-15-Pro", Display: "iPhone 15 Pro"}},
		osVersions:  []manager.CatalogEntry{{ID: "iOS17.0", Display: "iOS 17.0"}},
	}
	m := New(Options{Android: android, IOS: ios, DiskCache: cache.NewDisabledDiskCache()})

	// Open the Android form and let its catalog land, stamping the
	// cache fresh.
	_, cmd := m.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("android form open returned no catalog refresh command")
	}
	m.Update(cmd())
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	// The iOS catalog is still empty; opening its form must refresh it
	// even though the cache as a whole is fresh.
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = m.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("ios form open returned no command, want a catalog refresh")
	}
	snap := m.State().Snapshot()
	if snap.Form == nil || !snap.Form.LoadingCatalog {
		t.Error("ios form is not marked loading while its catalog refreshes")
	}

	m.Update(cmd())
	snap = m.State().Snapshot()
	if snap.Form == nil || len(snap.Form.DeviceTypes) != 1 {
		t.Fatalf("ios form catalogs = %+v, want the refreshed device types", snap.Form)
	}
	if _, ok := snap.Form.SelectedDeviceType(); !ok {
		t.Error("ios form has no selectable device type after the refresh")
	}
}

func TestModel_ConfigDefaultsFillCreateConfig(t *testing.T) {
	android := &fakeManager{
		platform:    device.PlatformAndroid,
		deviceTypes: []manager.CatalogEntry{{ID: "pixel_7", Display: "Pixel 7"}},
		osVersions:  []manager.CatalogEntry{{ID: "34", Display: "API 34"}},
	}
	m := New(Options{
		Android:        android,
		DiskCache:      cache.NewDisabledDiskCache(),
		DefaultRAM:     "4096",
		DefaultStorage: "16384",
	})

	if m.ramInput.Placeholder != "4096" || m.storageInput.Placeholder != "16384" {
		t.Errorf("placeholders = %q/%q, want the configured defaults",
			m.ramInput.Placeholder, m.storageInput.Placeholder)
	}

	_, cmd := m.Update(keyPress('n'))
	if cmd == nil {
		t.Fatal("form open returned no catalog refresh command")
	}
	m.Update(cmd())

	// Submit with the hardware fields left empty.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	m.Update(cmd())

	if len(android.created) != 1 {
		t.Fatalf("created configs = %d, want 1", len(android.created))
	}
	cfg := android.created[0]
	if cfg.RAMSize != "4096" || cfg.StorageSize != "16384" {
		t.Errorf("created RAM/storage = %q/%q, want the configured defaults", cfg.RAMSize, cfg.StorageSize)
	}
	if cfg.Name != "Pixel 7 API 34" {
		t.Errorf("created name = %q, want the placeholder name", cfg.Name)
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
