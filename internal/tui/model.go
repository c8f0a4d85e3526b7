package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wasabeef/emu-sub003/internal/cache"
	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/events"
	"github.com/wasabeef/emu-sub003/internal/manager"
	"github.com/wasabeef/emu-sub003/internal/state"
	"github.com/wasabeef/emu-sub003/internal/validation"
)

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	state    *state.AppState
	catalogs *cache.CatalogCache

	androidManager manager.DeviceManager
	iosManager     manager.DeviceManager
	diskCache      *cache.DiskCache

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	nameInput    textinput.Model
	ramInput     textinput.Model
	storageInput textinput.Model

	opDebouncer *events.Debouncer
	navBatcher  *events.NavBatcher[int]

	defaultRAM     string
	defaultStorage string

	width  int
	height int
}

// Options wires the model's collaborators.
type Options struct {
	Android   manager.DeviceManager
	IOS       manager.DeviceManager
	DiskCache *cache.DiskCache

	// DefaultRAM and DefaultStorage (MB) pre-fill the create form
	// when the user leaves those fields empty.
	DefaultRAM     string
	DefaultStorage string
}

// New builds the dashboard model. Either manager may be nil when its
// platform is unavailable on this machine.
func New(opts Options) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	defaultRAM := opts.DefaultRAM
	if defaultRAM == "" {
		defaultRAM = "2048"
	}
	defaultStorage := opts.DefaultStorage
	if defaultStorage == "" {
		defaultStorage = "8192"
	}

	name := textinput.New()
	name.CharLimit = 50
	ram := textinput.New()
	ram.Placeholder = defaultRAM
	ram.CharLimit = 5
	storage := textinput.New()
	storage.Placeholder = defaultStorage
	storage.CharLimit = 6

	disk := opts.DiskCache
	if disk == nil {
		disk = cache.NewDiskCache("")
	}

	return &Model{
		state:          state.New(),
		catalogs:       cache.NewCatalogCache(),
		androidManager: opts.Android,
		iosManager:     opts.IOS,
		diskCache:      disk,
		keys:           defaultKeyMap(),
		help:           help.New(),
		spinner:        sp,
		nameInput:      name,
		ramInput:       ram,
		storageInput:   storage,
		opDebouncer:    events.NewDebouncer(events.DefaultDebounceInterval),
		navBatcher:     events.NewNavBatcher[int](events.DefaultBatchWindow),
		defaultRAM:     defaultRAM,
		defaultStorage: defaultStorage,
	}
}

// State exposes the application state for the program bootstrap.
func (m *Model) State() *state.AppState { return m.state }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.state.MarkRefreshed()
	cmds := []tea.Cmd{
		m.loadCachedDevicesCmd(),
		m.refreshDevicesCmd(),
		m.spinner.Tick,
		tick(),
	}
	// Warm both catalogs in the background so the first create form
	// opens populated instead of waiting on the platform tools.
	if (m.androidManager != nil || m.iosManager != nil) && m.catalogs.BeginRefresh() {
		if m.androidManager != nil {
			cmds = append(cmds, m.refreshCatalogCmd(m.androidManager))
		}
		if m.iosManager != nil {
			cmds = append(cmds, m.refreshCatalogCmd(m.iosManager))
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(append(m.onTick(), tick())...)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case devicesLoadedMsg:
		return m, m.onDevicesLoaded(msg)

	case catalogLoadedMsg:
		m.onCatalogLoaded(msg)
		return m, nil

	case operationDoneMsg:
		return m, m.onOperationDone(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}
	return m, nil
}

// onTick runs the periodic work: navigation batch flush, notification
// expiry, and auto-refresh.
func (m *Model) onTick() []tea.Cmd {
	var cmds []tea.Cmd

	if target, ok := m.navBatcher.Take(); ok {
		m.applyNavTarget(target)
	}

	m.state.DismissExpiredNotifications()

	if m.state.ShouldAutoRefresh() {
		m.state.MarkRefreshed()
		cmds = append(cmds, m.refreshDevicesCmd())
	}
	return cmds
}

// applyNavTarget moves the cursor straight to the batched index.
func (m *Model) applyNavTarget(target int) {
	snap := m.state.Snapshot()
	current := snap.AndroidCursor
	if snap.ActivePanel == state.PanelIOS {
		current = snap.IOSCursor
	}
	m.state.MoveBySteps(target - current)
}

func (m *Model) onDevicesLoaded(msg devicesLoadedMsg) tea.Cmd {
	if msg.androidErr != nil {
		m.state.AddErrorNotification(manager.UserMessage(msg.androidErr))
	}
	if msg.iosErr != nil {
		m.state.AddErrorNotification(manager.UserMessage(msg.iosErr))
	}
	if msg.fromCache {
		// Never let a stale snapshot overwrite live data.
		snap := m.state.Snapshot()
		if len(snap.Android) > 0 || len(snap.IOS) > 0 {
			return nil
		}
	}
	// A failed listing keeps the platform's previous list on screen;
	// stale data beats an emptied panel.
	if msg.androidErr == nil {
		m.state.SetAndroidDevices(msg.android)
	}
	if msg.iosErr == nil {
		m.state.SetIOSDevices(msg.ios)
	}

	if pending := m.state.PendingDeviceStart(); pending != "" {
		for _, d := range msg.android {
			if d.AVDName == pending && d.Running {
				m.state.ClearPendingDeviceStart()
				m.state.AddSuccessNotification(fmt.Sprintf("%s is running", pending))
			}
		}
		for _, d := range msg.ios {
			if (d.DisplayName == pending || d.UDID == pending) && d.Running {
				m.state.ClearPendingDeviceStart()
				m.state.AddSuccessNotification(fmt.Sprintf("%s is running", pending))
			}
		}
	}

	// Only a fully successful listing is worth persisting; a partial
	// one would clobber the failed platform's saved list.
	if !msg.fromCache && msg.androidErr == nil && msg.iosErr == nil {
		if err := m.diskCache.Save(msg.android, msg.ios); err != nil {
			m.state.AddLog(state.LogWarn, "could not save device cache: "+err.Error())
		}
	}
	return nil
}

func (m *Model) onCatalogLoaded(msg catalogLoadedMsg) {
	if msg.err != nil {
		m.catalogs.FailRefresh()
		m.state.AddErrorNotification(manager.UserMessage(msg.err))
		return
	}
	if msg.platform == device.PlatformIOS {
		m.catalogs.UpdateIOS(msg.deviceTypes, msg.osVersions)
	} else {
		m.catalogs.UpdateAndroid(msg.deviceTypes, msg.osVersions)
	}
	m.state.UpdateForm(func(f *state.CreateForm) {
		if f.Platform == msg.platform {
			f.SetCatalogs(msg.osVersions, msg.deviceTypes)
		}
	})
}

func (m *Model) onOperationDone(msg operationDoneMsg) tea.Cmd {
	m.state.ClearOperationStatus()

	if msg.err != nil {
		if msg.action == "start" {
			m.state.ClearPendingDeviceStart()
		}
		m.state.UpdateForm(func(f *state.CreateForm) { f.Creating = false })
		m.state.AddPersistentErrorNotification(manager.UserMessage(msg.err))
		m.state.AddLog(state.LogError, fmt.Sprintf("%s %s failed: %v", msg.action, msg.device, msg.err))
		return nil
	}

	m.state.AddLog(state.LogInfo, fmt.Sprintf("%s %s done", msg.action, msg.device))
	switch msg.action {
	case "start":
		// Completion shows up as Running in a later listing; the
		// pending flag keeps the refresh cadence tight until then.
	case "create":
		m.state.CloseDialog()
		m.state.AddSuccessNotification(fmt.Sprintf("Created %s", msg.device))
	case "delete":
		m.state.AddSuccessNotification(fmt.Sprintf("Deleted %s", msg.device))
	case "wipe":
		m.state.AddSuccessNotification(fmt.Sprintf("Wiped %s", msg.device))
	case "stop":
		m.state.AddSuccessNotification(fmt.Sprintf("Stopped %s", msg.device))
	}
	m.state.MarkRefreshed()
	return m.refreshDevicesCmd()
}

// managerFor returns the manager for a platform, nil when missing.
func (m *Model) managerFor(p device.Platform) manager.DeviceManager {
	if p == device.PlatformIOS {
		return m.iosManager
	}
	return m.androidManager
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && m.state.Mode() == state.ModeNormal {
		return m, tea.Quit
	}

	switch m.state.Mode() {
	case state.ModeNormal:
		return m.onNormalKey(msg)
	case state.ModeCreateDevice:
		return m.onCreateFormKey(msg)
	case state.ModeConfirmDelete, state.ModeConfirmWipe:
		return m.onConfirmKey(msg)
	case state.ModeManageAPILevels, state.ModeHelp:
		if key.Matches(msg, m.keys.Dismiss) || key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Help) {
			m.state.CloseDialog()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) onNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollOrMove(-LogAreaHeight)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollOrMove(LogAreaHeight)
	case key.Matches(msg, m.keys.Top):
		if m.state.Focus() == state.FocusLogArea {
			m.state.ScrollLogsToTop()
		}
	case key.Matches(msg, m.keys.Bottom):
		if m.state.Focus() == state.FocusLogArea {
			m.state.ScrollLogsToBottom()
		}

	case key.Matches(msg, m.keys.Tab):
		m.state.NextPanel()
	case key.Matches(msg, m.keys.FocusLogs):
		if m.state.Focus() == state.FocusLogArea {
			m.state.SetFocus(state.FocusDeviceList)
		} else {
			m.state.SetFocus(state.FocusLogArea)
		}
	case key.Matches(msg, m.keys.AutoScroll):
		m.state.ToggleAutoScroll()

	case key.Matches(msg, m.keys.Refresh):
		m.state.MarkRefreshed()
		return m, m.refreshDevicesCmd()

	case key.Matches(msg, m.keys.Start):
		return m, m.startSelected()
	case key.Matches(msg, m.keys.Stop):
		return m, m.stopSelected()
	case key.Matches(msg, m.keys.Create):
		return m, m.openCreateForm()
	case key.Matches(msg, m.keys.Delete):
		if d := m.state.SelectedDevice(); d != nil {
			m.state.OpenConfirmDelete(d.Name(), d.ID(), m.state.ActivePanel().Platform())
		}
	case key.Matches(msg, m.keys.Wipe):
		if d := m.state.SelectedDevice(); d != nil {
			m.state.OpenConfirmWipe(d.Name(), d.ID(), m.state.ActivePanel().Platform())
		}
	case key.Matches(msg, m.keys.APILevels):
		m.state.OpenManageAPILevels()
	case key.Matches(msg, m.keys.Help):
		m.state.OpenHelp()
	case key.Matches(msg, m.keys.Dismiss):
		m.state.DismissAllNotifications()
	}
	return m, nil
}

// moveSelection routes a single-step move: the log area scrolls
// directly, the device list goes through the navigation batcher so a
// held key coalesces into one jump.
func (m *Model) moveSelection(step int) {
	if m.state.Focus() == state.FocusLogArea {
		m.state.ScrollLogs(-step)
		return
	}

	snap := m.state.Snapshot()
	length := len(snap.Android)
	current := snap.AndroidCursor
	if snap.ActivePanel == state.PanelIOS {
		length = len(snap.IOS)
		current = snap.IOSCursor
	}
	if length == 0 {
		return
	}

	// The batcher holds the latest intended index.
	if pending, ok := m.pendingNavTarget(); ok {
		current = pending
	}
	m.navBatcher.Add(((current+step)%length + length) % length)
}

// pendingNavTarget peeks the unconsumed batch target, if any.
func (m *Model) pendingNavTarget() (int, bool) {
	return m.navBatcher.Peek()
}

func (m *Model) scrollOrMove(lines int) {
	if m.state.Focus() == state.FocusLogArea {
		m.state.ScrollLogs(-lines)
		return
	}
	m.state.MoveBySteps(lines)
}

func (m *Model) startSelected() tea.Cmd {
	if !m.opDebouncer.ShouldProcess() {
		return nil
	}
	d := m.state.SelectedDevice()
	mgr := m.managerFor(m.state.ActivePanel().Platform())
	if d == nil || mgr == nil || d.IsRunning() {
		return nil
	}

	m.state.SetPendingDeviceStart(d.Name())
	m.state.SetOperationStatus(fmt.Sprintf("Starting %s...", d.Name()))
	m.state.AddLog(state.LogInfo, "starting "+d.Name())
	return deviceOpCmd(mgr, "start", d.ID(), mgr.StartDevice)
}

func (m *Model) stopSelected() tea.Cmd {
	if !m.opDebouncer.ShouldProcess() {
		return nil
	}
	d := m.state.SelectedDevice()
	mgr := m.managerFor(m.state.ActivePanel().Platform())
	if d == nil || mgr == nil || !d.IsRunning() {
		return nil
	}

	m.state.SetOperationStatus(fmt.Sprintf("Stopping %s...", d.Name()))
	m.state.AddLog(state.LogInfo, "stopping "+d.Name())
	return deviceOpCmd(mgr, "stop", d.ID(), mgr.StopDevice)
}

func (m *Model) openCreateForm() tea.Cmd {
	platform := m.state.ActivePanel().Platform()
	mgr := m.managerFor(platform)
	if mgr == nil {
		m.state.AddWarningNotification(fmt.Sprintf("%s is not available on this machine", platform))
		return nil
	}

	m.state.OpenCreateForm(platform)
	m.nameInput.Reset()
	m.ramInput.Reset()
	m.storageInput.Reset()
	m.nameInput.Focus()

	// Serve from the cache when fresh; refresh in the background
	// otherwise.
	var catalog struct {
		versions []manager.CatalogEntry
		types    []manager.CatalogEntry
	}
	if platform == device.PlatformIOS {
		ios := m.catalogs.IOS()
		catalog.versions, catalog.types = ios.Runtimes, ios.DeviceTypes
	} else {
		android := m.catalogs.Android()
		catalog.versions, catalog.types = android.APILevels, android.DeviceTypes
	}

	if len(catalog.types) > 0 {
		m.state.UpdateForm(func(f *state.CreateForm) {
			f.SetCatalogs(catalog.versions, catalog.types)
		})
	}

	// Staleness is stamped cache-wide, so an empty platform catalog
	// must force a refresh on its own: a fresh stamp earned by the
	// other platform says nothing about this one.
	if len(catalog.types) == 0 || m.catalogs.IsStale() {
		if m.catalogs.BeginRefresh() {
			m.state.UpdateForm(func(f *state.CreateForm) { f.LoadingCatalog = true })
			return m.refreshCatalogCmd(mgr)
		}
	}
	return nil
}

func (m *Model) onConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dialog := m.state.ConfirmDialog()
	if dialog == nil {
		m.state.CloseDialog()
		return m, nil
	}

	switch msg.String() {
	case "y", "enter":
		mode := m.state.Mode()
		mgr := m.managerFor(dialog.Platform)
		m.state.CloseDialog()
		if mgr == nil {
			return m, nil
		}
		if mode == state.ModeConfirmDelete {
			m.state.SetOperationStatus(fmt.Sprintf("Deleting %s...", dialog.DeviceName))
			return m, deviceOpCmd(mgr, "delete", dialog.DeviceID, mgr.DeleteDevice)
		}
		m.state.SetOperationStatus(fmt.Sprintf("Wiping %s...", dialog.DeviceName))
		return m, deviceOpCmd(mgr, "wipe", dialog.DeviceID, mgr.WipeDevice)

	case "n", "esc":
		m.state.CloseDialog()
	}
	return m, nil
}

func (m *Model) onCreateFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state.CloseDialog()
		return m, nil

	case "tab":
		m.state.UpdateForm(func(f *state.CreateForm) { f.NextField() })
		m.syncFormFocus()
		return m, nil
	case "shift+tab":
		m.state.UpdateForm(func(f *state.CreateForm) { f.PrevField() })
		m.syncFormFocus()
		return m, nil

	case "left":
		m.state.UpdateForm(func(f *state.CreateForm) { f.CycleSelection(-1) })
		return m, nil
	case "right":
		m.state.UpdateForm(func(f *state.CreateForm) { f.CycleSelection(1) })
		return m, nil

	case "enter":
		return m, m.submitCreateForm()
	}

	// Text fields receive everything else.
	var cmd tea.Cmd
	snap := m.state.Snapshot()
	if snap.Form == nil {
		return m, nil
	}
	switch snap.Form.Field {
	case state.FieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		value := m.nameInput.Value()
		m.state.UpdateForm(func(f *state.CreateForm) { f.Name = value })
	case state.FieldRAM:
		m.ramInput, cmd = m.ramInput.Update(msg)
		value := m.ramInput.Value()
		m.state.UpdateForm(func(f *state.CreateForm) { f.RAM = value })
	case state.FieldStorage:
		m.storageInput, cmd = m.storageInput.Update(msg)
		value := m.storageInput.Value()
		m.state.UpdateForm(func(f *state.CreateForm) { f.Storage = value })
	}
	return m, cmd
}

func (m *Model) syncFormFocus() {
	snap := m.state.Snapshot()
	m.nameInput.Blur()
	m.ramInput.Blur()
	m.storageInput.Blur()
	if snap.Form == nil {
		return
	}
	switch snap.Form.Field {
	case state.FieldName:
		m.nameInput.Focus()
	case state.FieldRAM:
		m.ramInput.Focus()
	case state.FieldStorage:
		m.storageInput.Focus()
	}
}

// submitCreateForm validates locally and fires creation. Invalid input
// never spawns a process.
func (m *Model) submitCreateForm() tea.Cmd {
	snap := m.state.Snapshot()
	form := snap.Form
	if form == nil || form.Creating {
		return nil
	}
	platform := form.Platform
	mgr := m.managerFor(platform)
	if mgr == nil {
		return nil
	}

	nameValidator := validation.DeviceNameValidator{Android: platform == device.PlatformAndroid}
	valid := true
	m.state.UpdateForm(func(f *state.CreateForm) {
		if err := nameValidator.Validate(f.EffectiveName()); err != nil {
			f.SetError(state.FieldName, err.Error())
			valid = false
		} else {
			f.SetError(state.FieldName, "")
		}
		if err := validation.RAMValidator().Validate(f.RAM); err != nil {
			f.SetError(state.FieldRAM, err.Error())
			valid = false
		} else {
			f.SetError(state.FieldRAM, "")
		}
		if err := validation.StorageValidator().Validate(f.Storage); err != nil {
			f.SetError(state.FieldStorage, err.Error())
			valid = false
		} else {
			f.SetError(state.FieldStorage, "")
		}
	})
	if !valid {
		return nil
	}

	form = m.state.Snapshot().Form
	if form == nil {
		return nil
	}
	cfg, ok := form.ToConfig()
	if !ok {
		m.state.AddWarningNotification("Catalogs are still loading")
		return nil
	}
	// Empty hardware fields take the configured defaults.
	if platform == device.PlatformAndroid {
		if cfg.RAMSize == "" {
			cfg = cfg.WithRAM(m.defaultRAM)
		}
		if cfg.StorageSize == "" {
			cfg = cfg.WithStorage(m.defaultStorage)
		}
	}
	m.state.UpdateForm(func(f *state.CreateForm) { f.Creating = true })
	m.state.SetOperationStatus(fmt.Sprintf("Creating %s...", cfg.Name))
	return createDeviceCmd(mgr, cfg)
}
