// Package events rate-limits high-frequency input before it reaches
// the application state: a debouncer suppresses re-entrant identical
// operations, and a navigation batcher coalesces a burst of panel
// moves into the single final intent.
package events
