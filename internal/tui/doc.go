// Package tui is the terminal dashboard: a bubbletea program with two
// device panels, a log area, notifications, and modal dialogs for
// device creation and destructive confirmations.
//
// The model owns no device data of its own. Every frame reads one
// state.Snapshot; key handlers mutate state and fire asynchronous
// commands against the platform managers, whose results come back as
// messages.
package tui
