package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the dashboard
var (
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - active borders, titles
	SuccessColor = lipgloss.Color("#43BF6D") // Green - running devices, success
	ErrorColor   = lipgloss.Color("#FF5555") // Red - errors, stopped markers
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings, pending
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 80 // Minimum supported terminal width
	LogAreaHeight    = 8  // Rows reserved for the log viewport
)

// Shared styles
var (
	// TitleStyle is for panel titles ("Android", "iOS")
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			Padding(0, 1)

	// ActivePanelStyle frames the panel holding the selection
	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(PrimaryColor).
				Padding(0, 1)

	// InactivePanelStyle frames the other panel
	InactivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(MutedColor).
				Padding(0, 1)

	// SelectedRowStyle highlights the device under the cursor
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true)

	// RunningStyle marks running devices
	RunningStyle = lipgloss.NewStyle().Foreground(SuccessColor)

	// StoppedStyle marks stopped devices
	StoppedStyle = lipgloss.NewStyle().Foreground(MutedColor)

	// PendingStyle marks devices mid-transition
	PendingStyle = lipgloss.NewStyle().Foreground(WarningColor)

	// NotificationStyles maps notification types to their look
	SuccessNotificationStyle = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	ErrorNotificationStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	WarningNotificationStyle = lipgloss.NewStyle().Foreground(WarningColor)
	InfoNotificationStyle    = lipgloss.NewStyle().Foreground(TextColor)

	// DialogStyle frames modal dialogs
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(WarningColor).
			Padding(1, 2)

	// LogAreaStyle frames the log viewport
	LogAreaStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(MutedColor).
			Padding(0, 1)

	// StatusBarStyle is the bottom status line
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)

	// FieldLabelStyle labels form fields
	FieldLabelStyle = lipgloss.NewStyle().Foreground(MutedColor)

	// FieldErrorStyle shows per-field validation errors
	FieldErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)
)
