package cache

import (
	"sync"
	"time"

	"github.com/wasabeef/emu-sub003/internal/manager"
)

// StalenessThreshold is how old catalog data may be before a
// background refresh is warranted.
const StalenessThreshold = 300 * time.Second

// AndroidCatalog is the Android half of the metadata catalogs.
type AndroidCatalog struct {
	DeviceTypes []manager.CatalogEntry
	APILevels   []manager.CatalogEntry
}

// IOSCatalog is the iOS half of the metadata catalogs.
type IOSCatalog struct {
	DeviceTypes []manager.CatalogEntry
	Runtimes    []manager.CatalogEntry
}

// CatalogCache is a time-boxed cache of the device type and OS version
// catalogs. Queries against the platform tools are slow (seconds), so
// the catalogs are refreshed in the background and read many times per
// frame without blocking.
type CatalogCache struct {
	mu          sync.RWMutex
	android     AndroidCatalog
	ios         IOSCatalog
	loading     bool
	lastUpdated time.Time

	// now is swappable for staleness tests
	now func() time.Time
}

// NewCatalogCache creates an empty cache. An empty cache is stale.
func NewCatalogCache() *CatalogCache {
	return &CatalogCache{now: time.Now}
}

// Android returns the Android catalogs.
func (c *CatalogCache) Android() AndroidCatalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.android
}

// IOS returns the iOS catalogs.
func (c *CatalogCache) IOS() IOSCatalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ios
}

// IsLoading reports whether a refresh is in flight.
func (c *CatalogCache) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// IsStale reports whether the catalogs are older than the staleness
// threshold. A refresh in flight does not affect staleness.
func (c *CatalogCache) IsStale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now().Sub(c.lastUpdated) > StalenessThreshold
}

// BeginRefresh marks a refresh as in flight. It returns false when a
// refresh is already running, which is the caller's signal not to
// start a second one.
func (c *CatalogCache) BeginRefresh() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return false
	}
	c.loading = true
	return true
}

// UpdateAndroid atomically replaces the Android catalogs, stamps the
// cache fresh, and clears the loading flag.
func (c *CatalogCache) UpdateAndroid(deviceTypes, apiLevels []manager.CatalogEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.android = AndroidCatalog{DeviceTypes: deviceTypes, APILevels: apiLevels}
	c.lastUpdated = c.now()
	c.loading = false
}

// UpdateIOS atomically replaces the iOS catalogs, stamps the cache
// fresh, and clears the loading flag.
func (c *CatalogCache) UpdateIOS(deviceTypes, runtimes []manager.CatalogEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ios = IOSCatalog{DeviceTypes: deviceTypes, Runtimes: runtimes}
	c.lastUpdated = c.now()
	c.loading = false
}

// FailRefresh clears the loading flag without touching the data.
// Stale-but-present data beats an empty catalog.
func (c *CatalogCache) FailRefresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}
