// Package validation provides local field validators for the device
// creation form. Input is rejected before any external process is
// spawned, so an invalid name or size never reaches the platform tools.
package validation
