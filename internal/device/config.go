package device

// Config carries the parameters for creating a new virtual device.
// Zero-valued optional fields mean "use the platform default".
type Config struct {
	// Name is the desired device name
	Name string
	// DeviceType is the hardware profile identifier (e.g. "pixel_7"
	// for Android, "iPhone 15 Pro" for iOS)
	DeviceType string
	// Version is the OS version: an API level string for Android
	// ("34") or a runtime version for iOS ("17.0")
	Version string
	// RAMSize is the RAM allocation in MB, Android only
	RAMSize string
	// StorageSize is the internal storage size in MB, Android only
	StorageSize string
	// Options holds additional platform-specific creation options
	Options map[string]string
}

// NewConfig creates a device creation config with the required fields.
func NewConfig(name, deviceType, version string) Config {
	return Config{
		Name:       name,
		DeviceType: deviceType,
		Version:    version,
	}
}

// WithRAM returns a copy of the config with the RAM size set.
func (c Config) WithRAM(ramMB string) Config {
	c.RAMSize = ramMB
	return c
}

// WithStorage returns a copy of the config with the storage size set.
func (c Config) WithStorage(storageMB string) Config {
	c.StorageSize = storageMB
	return c
}

// WithOption returns a copy of the config with an extra option set.
func (c Config) WithOption(key, value string) Config {
	opts := make(map[string]string, len(c.Options)+1)
	for k, v := range c.Options {
		opts[k] = v
	}
	opts[key] = value
	c.Options = opts
	return c
}
