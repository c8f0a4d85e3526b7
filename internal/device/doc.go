// Package device defines the core data structures representing virtual
// devices: the platform-neutral Device interface, the Android and iOS
// record types, creation configuration, and the pure functions that
// categorize and order devices for display.
//
// # Device Records
//
// Each platform has its own record type with platform-specific fields
// (AndroidDevice, IOSDevice), unified by the Device interface which
// exposes identity, status, and running state. The Running field is kept
// consistent with Status on every mutation: a device is running exactly
// when its status is StatusRunning.
//
// # Ordering
//
// AndroidPriority and IOSPriority compute a numeric display priority
// where lower sorts earlier. Both are pure functions of the identifier
// and display name so the ordering contract is unit-testable in
// isolation: flagship families sort before other brands, newer versions
// within a family sort before older ones, and phones sort before
// tablets, which sort before wearables and TVs.
package device
