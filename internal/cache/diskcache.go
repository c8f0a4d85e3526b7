package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/logging"
)

// diskCacheVersion guards the on-disk format. A document written by a
// different version is treated as absent, never reinterpreted.
const diskCacheVersion = 1

// DefaultExpiry is how old a saved device snapshot may be before load
// reports no cache.
const DefaultExpiry = 24 * time.Hour

// diskDocument is the on-disk JSON shape.
type diskDocument struct {
	Version        int                     `json:"version"`
	LastUpdated    time.Time               `json:"lastUpdated"`
	AndroidDevices []*device.AndroidDevice `json:"androidDevices"`
	IOSDevices     []*device.IOSDevice     `json:"iosDevices"`
}

// DiskCache persists the last known device lists so the dashboard has
// content on startup before the first live listing completes.
type DiskCache struct {
	path     string
	expiry   time.Duration
	disabled bool
}

// NewDiskCache creates a cache at the given path. An empty path uses
// the default location under the user config directory.
func NewDiskCache(path string) *DiskCache {
	if path == "" {
		path = defaultCachePath()
	}
	return &DiskCache{path: path, expiry: DefaultExpiry}
}

// NewDisabledDiskCache creates a cache that never loads or saves, for
// when persistence is turned off in the configuration.
func NewDisabledDiskCache() *DiskCache {
	return &DiskCache{disabled: true}
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "emu", "devices.json")
	}
	return filepath.Join(home, ".config", "emu", "cache", "devices.json")
}

// Load reads the saved device lists. It returns ok=false when the file
// is missing, unreadable, from a different format version, or older
// than the expiry; a broken cache never surfaces as an error.
func (c *DiskCache) Load() (android []*device.AndroidDevice, ios []*device.IOSDevice, ok bool) {
	if c.disabled {
		return nil, nil, false
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, nil, false
	}

	var doc diskDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		logging.Debug("device cache unreadable, ignoring")
		return nil, nil, false
	}
	if doc.Version != diskCacheVersion {
		return nil, nil, false
	}
	if time.Since(doc.LastUpdated) > c.expiry {
		return nil, nil, false
	}
	return doc.AndroidDevices, doc.IOSDevices, true
}

// Save writes the device lists atomically: the document lands in a
// temp file first and is renamed into place, so a crash mid-write
// never leaves a truncated cache.
func (c *DiskCache) Save(android []*device.AndroidDevice, ios []*device.IOSDevice) error {
	if c.disabled {
		return nil
	}
	doc := diskDocument{
		Version:        diskCacheVersion,
		LastUpdated:    time.Now(),
		AndroidDevices: android,
		IOSDevices:     ios,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.path), "devices-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path)
}

// Clear removes the cache file if present.
func (c *DiskCache) Clear() error {
	if c.disabled {
		return nil
	}
	err := os.Remove(c.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
