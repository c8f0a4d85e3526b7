// Package manager implements the per-platform device lifecycle
// managers. AndroidManager drives the Android SDK command line tools
// (avdmanager, emulator, adb, sdkmanager) and IOSManager drives xcrun
// simctl; both expose the same DeviceManager contract so callers never
// branch on platform beyond construction.
//
// All external tool output flows through a small set of parsers that
// normalize free text and JSON into device records. Parse failures on
// list operations degrade to empty results rather than hard errors so
// a single corrupt record never blanks the dashboard.
package manager
