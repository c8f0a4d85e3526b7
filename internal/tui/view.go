package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/state"
)

// View implements tea.Model. It reads one snapshot and renders
// everything from it.
func (m *Model) View() string {
	snap := m.state.Snapshot()

	if m.width > 0 && m.width < MinTerminalWidth {
		return fmt.Sprintf("Terminal too narrow (%d cols, need %d)\n", m.width, MinTerminalWidth)
	}

	var b strings.Builder
	b.WriteString(m.renderPanels(snap))
	b.WriteString("\n")
	b.WriteString(m.renderDetails(snap))
	b.WriteString("\n")
	b.WriteString(m.renderLogs(snap))
	b.WriteString("\n")
	b.WriteString(m.renderNotifications(snap))
	b.WriteString(m.renderStatusBar(snap))

	switch snap.Mode {
	case state.ModeConfirmDelete, state.ModeConfirmWipe:
		return m.overlay(b.String(), m.renderConfirmDialog(snap))
	case state.ModeCreateDevice:
		return m.overlay(b.String(), m.renderCreateForm(snap))
	case state.ModeHelp:
		return m.overlay(b.String(), m.renderHelp())
	case state.ModeManageAPILevels:
		return m.overlay(b.String(), m.renderAPILevels())
	}
	return b.String()
}

func (m *Model) panelWidth() int {
	w := m.width
	if w == 0 {
		w = MinTerminalWidth
	}
	return w/2 - 3
}

func (m *Model) renderPanels(snap state.Snapshot) string {
	androidRows := make([]string, 0, len(snap.Android))
	for i, d := range snap.Android {
		androidRows = append(androidRows, m.deviceRow(
			d.AVDName, fmt.Sprintf("API %d", d.APILevel), d.State,
			i == snap.AndroidCursor && snap.ActivePanel == state.PanelAndroid,
		))
	}
	iosRows := make([]string, 0, len(snap.IOS))
	for i, d := range snap.IOS {
		iosRows = append(iosRows, m.deviceRow(
			d.DisplayName, d.IOSVersion, d.State,
			i == snap.IOSCursor && snap.ActivePanel == state.PanelIOS,
		))
	}

	android := m.renderPanel("Android", androidRows, snap.ActivePanel == state.PanelAndroid)
	ios := m.renderPanel("iOS", iosRows, snap.ActivePanel == state.PanelIOS)
	return lipgloss.JoinHorizontal(lipgloss.Top, android, " ", ios)
}

func (m *Model) renderPanel(title string, rows []string, active bool) string {
	style := InactivePanelStyle
	if active {
		style = ActivePanelStyle
	}
	body := TitleStyle.Render(title) + "\n"
	if len(rows) == 0 {
		body += StoppedStyle.Render("  no devices")
	} else {
		body += strings.Join(rows, "\n")
	}
	return style.Width(m.panelWidth()).Render(body)
}

func (m *Model) deviceRow(name, version string, status device.Status, selected bool) string {
	marker := statusMarker(status)
	row := fmt.Sprintf("%s %-30s %s", marker, truncate(name, 30), version)
	if selected {
		return SelectedRowStyle.Render(row)
	}
	return row
}

func statusMarker(status device.Status) string {
	switch status {
	case device.StatusRunning:
		return RunningStyle.Render("●")
	case device.StatusStarting, device.StatusStopping, device.StatusCreating:
		return PendingStyle.Render("◐")
	case device.StatusError:
		return ErrorNotificationStyle.Render("✗")
	default:
		return StoppedStyle.Render("○")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func (m *Model) renderDetails(snap state.Snapshot) string {
	details := m.state.SelectedDeviceDetails()
	if details == nil {
		return StatusBarStyle.Render("no device selected")
	}

	parts := []string{
		FieldLabelStyle.Render("Name: ") + details.Name,
		FieldLabelStyle.Render("Category: ") + details.Category,
		FieldLabelStyle.Render("Version: ") + details.Version,
		FieldLabelStyle.Render("Status: ") + details.Status.String(),
	}
	if details.RAMSize != "" {
		parts = append(parts, FieldLabelStyle.Render("RAM: ")+details.RAMSize+" MB")
	}
	if details.Storage != "" {
		parts = append(parts, FieldLabelStyle.Render("Storage: ")+details.Storage+" MB")
	}
	return StatusBarStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) renderLogs(snap state.Snapshot) string {
	logs := m.state.FilteredLogs()

	// The scroll offset counts lines back from the tail.
	end := len(logs) - snap.LogScroll
	if end < 0 {
		end = 0
	}
	start := end - LogAreaHeight
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, LogAreaHeight)
	for _, e := range logs[start:end] {
		line := fmt.Sprintf("%s %-5s %s",
			e.Timestamp.Format("15:04:05"), e.Level, truncate(e.Message, m.panelWidth()*2))
		if e.Level == state.LogError {
			line = FieldErrorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, StoppedStyle.Render("no logs"))
	}

	title := "Logs"
	if !snap.AutoScroll {
		title += " (scrolled)"
	}
	if snap.Focus == state.FocusLogArea {
		title += " [focused]"
	}
	return LogAreaStyle.Width(m.panelWidth()*2 + 3).Render(
		TitleStyle.Render(title) + "\n" + strings.Join(lines, "\n"))
}

func (m *Model) renderNotifications(snap state.Snapshot) string {
	if len(snap.Notifications) == 0 {
		return ""
	}
	var b strings.Builder
	for _, n := range snap.Notifications {
		style := InfoNotificationStyle
		prefix := "i"
		switch n.Type {
		case state.NotificationSuccess:
			style, prefix = SuccessNotificationStyle, "✓"
		case state.NotificationError:
			style, prefix = ErrorNotificationStyle, "✗"
		case state.NotificationWarning:
			style, prefix = WarningNotificationStyle, "!"
		}
		b.WriteString(style.Render(fmt.Sprintf(" %s %s", prefix, n.Message)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderStatusBar(snap state.Snapshot) string {
	left := m.help.View(m.keys)
	if snap.OperationStatus != "" {
		left = m.spinner.View() + " " + snap.OperationStatus
	}
	return StatusBarStyle.Render(left)
}

func (m *Model) renderConfirmDialog(snap state.Snapshot) string {
	if snap.ConfirmDialog == nil {
		return ""
	}
	verb := "Delete"
	warning := "This removes the device definition permanently."
	if snap.Mode == state.ModeConfirmWipe {
		verb = "Wipe"
		warning = "This erases all user data on the device."
	}
	body := fmt.Sprintf("%s %s?\n\n%s\n\n[y] confirm  [n] cancel",
		verb, snap.ConfirmDialog.DeviceName, warning)
	return DialogStyle.Render(body)
}

func (m *Model) renderCreateForm(snap state.Snapshot) string {
	form := snap.Form
	if form == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("New %s device", form.Platform)))
	b.WriteString("\n\n")
	if form.LoadingCatalog {
		b.WriteString(m.spinner.View() + " loading catalogs...\n\n")
	}

	writeField := func(field state.FormField, value string) {
		label := field.String()
		if form.Field == field {
			label = SelectedRowStyle.Render(label)
		} else {
			label = FieldLabelStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", label, value))
		if msg, ok := form.Errors[field]; ok {
			b.WriteString(FieldErrorStyle.Render("  " + msg))
			b.WriteString("\n")
		}
	}

	if v, ok := form.SelectedAPILevel(); ok {
		writeField(state.FieldAPILevel, v.Display)
	} else {
		writeField(state.FieldAPILevel, "-")
	}
	if form.Platform == device.PlatformAndroid {
		writeField(state.FieldCategory, form.SelectedCategory().String())
	}
	if v, ok := form.SelectedDeviceType(); ok {
		writeField(state.FieldDeviceType, v.Display)
	} else {
		writeField(state.FieldDeviceType, "-")
	}
	if form.Platform == device.PlatformAndroid {
		writeField(state.FieldRAM, m.ramInput.View())
		writeField(state.FieldStorage, m.storageInput.View())
	}
	name := m.nameInput.View()
	if form.Name == "" {
		name += FieldLabelStyle.Render(" (" + form.PlaceholderName() + ")")
	}
	writeField(state.FieldName, name)

	if form.Creating {
		b.WriteString("\n" + m.spinner.View() + " creating...")
	} else {
		b.WriteString("\ntab: next field  ←/→: change  enter: create  esc: cancel")
	}
	return DialogStyle.Render(b.String())
}

func (m *Model) renderHelp() string {
	return DialogStyle.Render(m.help.FullHelpView(m.keys.FullHelp()))
}

func (m *Model) renderAPILevels() string {
	android := m.catalogs.Android()
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Installed system images"))
	b.WriteString("\n\n")
	if len(android.APILevels) == 0 {
		b.WriteString(StoppedStyle.Render("none found; install with sdkmanager"))
	}
	for _, e := range android.APILevels {
		b.WriteString("  " + e.Display + "\n")
	}
	b.WriteString("\nesc: close")
	return DialogStyle.Render(b.String())
}

// overlay centers a dialog over the base view.
func (m *Model) overlay(base, dialog string) string {
	if m.width == 0 || m.height == 0 {
		return base + "\n" + dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
