// Package cache holds the two caches backing the dashboard: an
// in-memory catalog cache for the slowly-changing device type and OS
// version catalogs shared by both platform managers, and an on-disk
// device cache that gives the UI an instant first paint before the
// first live listing completes.
package cache
