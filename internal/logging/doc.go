// Package logging provides structured logging for emu.
//
// This package wraps zap with convenience functions for the logging
// patterns used throughout the application. Because the TUI owns the
// terminal, log output goes to a file rather than stdout; when no level
// is configured the logger is a silent nop so the dashboard never has
// to compete with diagnostics for the screen.
//
// # Log Levels
//
//   - Debug: command lines, raw tool output, parse traces
//   - Info: device lifecycle events (started, stopped, created)
//   - Warn: non-fatal issues (cache refresh failures, retries)
//   - Error: failed operations surfaced to the user
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize(""); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// An empty level falls back to the EMU_LOG_LEVEL environment variable;
// if neither is set, logging is disabled.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
