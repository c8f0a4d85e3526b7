// Package exec provides the command execution layer for emu.
//
// Every interaction with platform tooling (avdmanager, adb, sdkmanager,
// emulator, xcrun simctl) goes through the Executor interface defined
// here. The interface exists so that every higher layer can be tested
// without ever invoking a real external tool: MockExecutor records each
// invocation and serves pre-programmed responses.
//
// # Operations
//
//   - Run: spawn, wait, capture combined output text
//   - Spawn: fire-and-forget launch for long-running processes
//     (emulator instances), returning the PID
//   - RunWithRetry: absorb transient tool flakiness with immediate retries
//   - RunIgnoringErrors: treat recognized "already in that state" failures
//     as successful no-ops
//
// # Timeouts
//
// Run respects context cancellation and applies a per-command timeout
// from the Runner's Config. A timed-out command is reported as a
// *CommandError wrapping context.DeadlineExceeded.
package exec
