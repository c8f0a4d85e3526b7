package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/wasabeef/emu-sub003/internal/device"
)

const (
	maxNotifications = 10
	maxLogEntries    = 1000

	// Auto-refresh runs every 3s normally; while a device start is
	// pending the interval shrinks so the status flip shows quickly.
	normalRefreshInterval  = 3 * time.Second
	pendingRefreshInterval = 1 * time.Second
)

// AppState is the single source of truth for the dashboard. All
// methods are safe for concurrent use.
type AppState struct {
	mu sync.RWMutex

	android       []*device.AndroidDevice
	ios           []*device.IOSDevice
	androidCursor int
	iosCursor     int

	activePanel Panel
	focus       Focus
	mode        Mode

	confirmDialog *ConfirmDialog
	form          *CreateForm

	notifications []Notification

	logs       []LogEntry
	logScroll  int
	logFilter  *LogLevel
	autoScroll bool

	details *DeviceDetails

	operationStatus    string
	pendingDeviceStart string
	refreshInterval    time.Duration
	lastRefresh        time.Time

	// now is swappable for expiry and refresh tests
	now func() time.Time
}

// New creates an AppState in normal mode with auto-scroll on.
func New() *AppState {
	return &AppState{
		autoScroll:      true,
		refreshInterval: normalRefreshInterval,
		now:             time.Now,
	}
}

// Snapshot is an immutable copy of everything the renderer needs for
// one frame.
type Snapshot struct {
	Android       []*device.AndroidDevice
	IOS           []*device.IOSDevice
	AndroidCursor int
	IOSCursor     int

	ActivePanel Panel
	Focus       Focus
	Mode        Mode

	ConfirmDialog *ConfirmDialog
	Form          *CreateForm

	Notifications []Notification

	Logs       []LogEntry
	LogScroll  int
	LogFilter  *LogLevel
	AutoScroll bool

	Details         *DeviceDetails
	OperationStatus string
	PendingStart    string
}

// Snapshot returns a consistent copy of the state. Device records are
// copied so a later mutation cannot race the renderer.
func (s *AppState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		AndroidCursor:   s.androidCursor,
		IOSCursor:       s.iosCursor,
		ActivePanel:     s.activePanel,
		Focus:           s.focus,
		Mode:            s.mode,
		LogScroll:       s.logScroll,
		AutoScroll:      s.autoScroll,
		OperationStatus: s.operationStatus,
		PendingStart:    s.pendingDeviceStart,
	}

	snap.Android = make([]*device.AndroidDevice, len(s.android))
	for i, d := range s.android {
		c := *d
		snap.Android[i] = &c
	}
	snap.IOS = make([]*device.IOSDevice, len(s.ios))
	for i, d := range s.ios {
		c := *d
		snap.IOS[i] = &c
	}

	snap.Notifications = append([]Notification(nil), s.notifications...)
	snap.Logs = append([]LogEntry(nil), s.logs...)

	if s.confirmDialog != nil {
		c := *s.confirmDialog
		snap.ConfirmDialog = &c
	}
	if s.form != nil {
		c := *s.form
		snap.Form = &c
	}
	if s.logFilter != nil {
		c := *s.logFilter
		snap.LogFilter = &c
	}
	if s.details != nil {
		c := *s.details
		snap.Details = &c
	}
	return snap
}

// SetAndroidDevices replaces the Android list, clamping the cursor so
// it stays valid for the new length.
func (s *AppState) SetAndroidDevices(devices []*device.AndroidDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.android = devices
	s.androidCursor = clampCursor(s.androidCursor, len(devices))
}

// SetIOSDevices replaces the iOS list, clamping the cursor.
func (s *AppState) SetIOSDevices(devices []*device.IOSDevice) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ios = devices
	s.iosCursor = clampCursor(s.iosCursor, len(devices))
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// ActivePanel returns the panel holding the selection.
func (s *AppState) ActivePanel() Panel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activePanel
}

// Mode returns the current modal state.
func (s *AppState) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// NextPanel toggles between the two device panels. Each panel keeps
// its own cursor. The cached details are cleared only when the panel
// switch crosses platforms.
func (s *AppState) NextPanel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := PanelAndroid
	if s.activePanel == PanelAndroid {
		next = PanelIOS
	}
	s.smartClearDetailsLocked(next)
	s.activePanel = next
}

// SetFocus moves keyboard focus between the device list and log area.
func (s *AppState) SetFocus(f Focus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focus = f
}

// Focus returns the focused screen area.
func (s *AppState) Focus() Focus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focus
}

func (s *AppState) smartClearDetailsLocked(next Panel) {
	if s.details != nil && s.details.Platform != next.Platform() {
		s.details = nil
	}
}

// activeList returns the cursor and length for the active panel.
func (s *AppState) activeListLocked() (*int, int) {
	if s.activePanel == PanelIOS {
		return &s.iosCursor, len(s.ios)
	}
	return &s.androidCursor, len(s.android)
}

// MoveUp moves the selection up one row, wrapping at the top. No-op
// on an empty list.
func (s *AppState) MoveUp() { s.MoveBySteps(-1) }

// MoveDown moves the selection down one row, wrapping at the bottom.
func (s *AppState) MoveDown() { s.MoveBySteps(1) }

// MoveBySteps moves the selection n rows (negative is up) in one
// step. The end state equals |n| single moves for any n, including
// |n| larger than the list.
func (s *AppState) MoveBySteps(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cursor, length := s.activeListLocked()
	if length == 0 {
		return
	}
	*cursor = ((*cursor+n)%length + length) % length
}

// SelectedDevice returns the device under the cursor, or nil when the
// active list is empty.
func (s *AppState) SelectedDevice() device.Device {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activePanel == PanelIOS {
		if len(s.ios) == 0 {
			return nil
		}
		c := *s.ios[s.iosCursor]
		return &c
	}
	if len(s.android) == 0 {
		return nil
	}
	c := *s.android[s.androidCursor]
	return &c
}

// OpenConfirmDelete enters delete confirmation. The dialog payload is
// set in the same critical section as the mode, so a confirm mode
// without a payload cannot be observed.
func (s *AppState) OpenConfirmDelete(name, id string, platform device.Platform) {
	s.openConfirm(ModeConfirmDelete, name, id, platform)
}

// OpenConfirmWipe enters wipe confirmation.
func (s *AppState) OpenConfirmWipe(name, id string, platform device.Platform) {
	s.openConfirm(ModeConfirmWipe, name, id, platform)
}

func (s *AppState) openConfirm(mode Mode, name, id string, platform device.Platform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.confirmDialog = &ConfirmDialog{DeviceName: name, DeviceID: id, Platform: platform}
}

// ConfirmDialog returns the pending confirmation payload, nil outside
// the confirm modes.
func (s *AppState) ConfirmDialog() *ConfirmDialog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.confirmDialog == nil {
		return nil
	}
	c := *s.confirmDialog
	return &c
}

// OpenCreateForm enters the device creation form for a platform.
func (s *AppState) OpenCreateForm(platform device.Platform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeCreateDevice
	s.form = NewCreateForm(platform)
}

// Form returns the live creation form, nil outside create mode. The
// caller mutates it through UpdateForm.
func (s *AppState) UpdateForm(fn func(*CreateForm)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.form != nil {
		fn(s.form)
	}
}

// OpenManageAPILevels enters the system image management view.
func (s *AppState) OpenManageAPILevels() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeManageAPILevels
}

// OpenHelp enters the key binding reference.
func (s *AppState) OpenHelp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeHelp
}

// CloseDialog returns to normal mode and drops any dialog payload and
// form.
func (s *AppState) CloseDialog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = ModeNormal
	s.confirmDialog = nil
	s.form = nil
}

// AddSuccessNotification queues a success notification.
func (s *AppState) AddSuccessNotification(msg string) {
	s.addNotification(NotificationSuccess, msg, DefaultAutoDismiss)
}

// AddErrorNotification queues an error notification.
func (s *AppState) AddErrorNotification(msg string) {
	s.addNotification(NotificationError, msg, DefaultAutoDismiss)
}

// AddWarningNotification queues a warning notification.
func (s *AppState) AddWarningNotification(msg string) {
	s.addNotification(NotificationWarning, msg, DefaultAutoDismiss)
}

// AddInfoNotification queues an info notification.
func (s *AppState) AddInfoNotification(msg string) {
	s.addNotification(NotificationInfo, msg, DefaultAutoDismiss)
}

// AddPersistentErrorNotification queues an error that stays until
// dismissed by the user.
func (s *AppState) AddPersistentErrorNotification(msg string) {
	s.addNotification(NotificationError, msg, 0)
}

func (s *AppState) addNotification(typ NotificationType, msg string, dismiss time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, Notification{
		Type:             typ,
		Message:          msg,
		CreatedAt:        s.now(),
		AutoDismissAfter: dismiss,
	})
	// FIFO eviction keeps the queue bounded.
	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}
}

// Notifications returns the current queue.
func (s *AppState) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Notification(nil), s.notifications...)
}

// DismissExpiredNotifications drops notifications past their dismiss
// duration.
func (s *AppState) DismissExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notifications[:0]
	now := s.now()
	for _, n := range s.notifications {
		if !n.IsExpired(now) {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// DismissNotification removes the notification at index i.
func (s *AppState) DismissNotification(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.notifications) {
		return
	}
	s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
}

// DismissAllNotifications empties the queue.
func (s *AppState) DismissAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
}

// AddLog appends to the bounded log ring, dropping the oldest entries
// past the cap.
func (s *AppState) AddLog(level LogLevel, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, LogEntry{Level: level, Message: msg, Timestamp: s.now()})
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries:]
	}
	if s.autoScroll {
		s.logScroll = 0
	}
}

// SetLogFilter shows only entries at the given level; nil shows all.
func (s *AppState) SetLogFilter(level *LogLevel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logFilter = level
	s.logScroll = 0
}

// FilteredLogs returns the log entries visible under the current
// filter, oldest first.
func (s *AppState) FilteredLogs() []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.logFilter == nil {
		return append([]LogEntry(nil), s.logs...)
	}
	var out []LogEntry
	for _, e := range s.logs {
		if e.Level == *s.logFilter {
			out = append(out, e)
		}
	}
	return out
}

// ScrollLogs moves the log view by lines (positive scrolls back in
// history). Any manual scroll turns auto-scroll off.
func (s *AppState) ScrollLogs(lines int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoScroll = false
	s.logScroll = clampScroll(s.logScroll+lines, len(s.logs))
}

// ScrollLogsToTop jumps to the oldest entry.
func (s *AppState) ScrollLogsToTop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoScroll = false
	s.logScroll = clampScroll(len(s.logs), len(s.logs))
}

// ScrollLogsToBottom jumps to the newest entry and re-enables
// auto-scroll.
func (s *AppState) ScrollLogsToBottom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logScroll = 0
	s.autoScroll = true
}

// ToggleAutoScroll flips tail-following. Turning it on snaps to the
// newest entry.
func (s *AppState) ToggleAutoScroll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoScroll = !s.autoScroll
	if s.autoScroll {
		s.logScroll = 0
	}
}

// AutoScroll reports whether the log view follows the tail.
func (s *AppState) AutoScroll() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoScroll
}

func clampScroll(offset, length int) int {
	if offset < 0 {
		return 0
	}
	if offset > length {
		return length
	}
	return offset
}

// SetCachedDetails stores the detail view for the selected device.
func (s *AppState) SetCachedDetails(d DeviceDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = &d
}

// ClearCachedDetails drops the cached detail view.
func (s *AppState) ClearCachedDetails() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = nil
}

// SelectedDeviceDetails returns the cached details when they match the
// selected device, otherwise a view synthesized from the record under
// the cursor.
func (s *AppState) SelectedDeviceDetails() *DeviceDetails {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.activePanel == PanelIOS {
		if len(s.ios) == 0 {
			return nil
		}
		d := s.ios[s.iosCursor]
		if s.details != nil && s.details.Platform == device.PlatformIOS && s.details.ID == d.UDID {
			c := *s.details
			return &c
		}
		return &DeviceDetails{
			Name:     d.DisplayName,
			ID:       d.UDID,
			Platform: device.PlatformIOS,
			Category: device.Categorize(d.DeviceType, d.DisplayName).String(),
			Version:  d.IOSVersion,
			Status:   d.State,
		}
	}

	if len(s.android) == 0 {
		return nil
	}
	d := s.android[s.androidCursor]
	if s.details != nil && s.details.Platform == device.PlatformAndroid && s.details.ID == d.AVDName {
		c := *s.details
		return &c
	}
	return &DeviceDetails{
		Name:     d.AVDName,
		ID:       d.AVDName,
		Platform: device.PlatformAndroid,
		Category: device.Categorize(d.DeviceType, d.AVDName).String(),
		Version:  fmt.Sprintf("API %d", d.APILevel),
		Status:   d.State,
		RAMSize:  d.RAMSize,
		Storage:  d.StorageSize,
	}
}

// SetOperationStatus shows a transient status line for a long-running
// operation.
func (s *AppState) SetOperationStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operationStatus = status
}

// ClearOperationStatus removes the status line.
func (s *AppState) ClearOperationStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operationStatus = ""
}

// SetPendingDeviceStart records that a device boot is in progress and
// shrinks the auto-refresh interval until it completes.
func (s *AppState) SetPendingDeviceStart(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDeviceStart = name
	s.refreshInterval = pendingRefreshInterval
}

// ClearPendingDeviceStart restores the normal refresh interval.
func (s *AppState) ClearPendingDeviceStart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDeviceStart = ""
	s.refreshInterval = normalRefreshInterval
}

// PendingDeviceStart returns the name of the device being started, or
// empty.
func (s *AppState) PendingDeviceStart() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pendingDeviceStart
}

// ShouldAutoRefresh reports whether the refresh interval has elapsed
// since the last refresh.
func (s *AppState) ShouldAutoRefresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now().Sub(s.lastRefresh) >= s.refreshInterval
}

// MarkRefreshed stamps the last refresh time.
func (s *AppState) MarkRefreshed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRefresh = s.now()
}
