package manager

import (
	"context"
	"runtime"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/exec"
	"github.com/wasabeef/emu-sub003/internal/logging"
)

const (
	simRuntimePrefix    = "com.apple.CoreSimulator.SimRuntime."
	simDeviceTypePrefix = "com.apple.CoreSimulator.SimDeviceType."
)

// Failure text simctl emits when a device is already in the requested
// state. These transitions are treated as successful no-ops.
var (
	bootIgnorePatterns     = []string{"current state: Booted"}
	shutdownIgnorePatterns = []string{"current state: Shutdown"}
)

// IOSManager manages iOS simulators through xcrun simctl. It only
// functions on macOS with Xcode command line tools installed.
type IOSManager struct {
	executor exec.Executor
}

// NewIOSManager constructs the manager. Simulator support requires
// macOS; on other platforms construction fails with an actionable
// message rather than failing on first use.
func NewIOSManager(executor exec.Executor) (*IOSManager, error) {
	if runtime.GOOS != "darwin" {
		return nil, NewToolNotFoundError("iOS simulators require macOS")
	}
	return &IOSManager{executor: executor}, nil
}

// newIOSManagerForTest skips the OS gate so parsing and lifecycle
// logic is testable everywhere.
func newIOSManagerForTest(executor exec.Executor) *IOSManager {
	return &IOSManager{executor: executor}
}

// Platform implements DeviceManager.
func (m *IOSManager) Platform() device.Platform { return device.PlatformIOS }

// IsAvailable implements DeviceManager.
func (m *IOSManager) IsAvailable(ctx context.Context) bool {
	_, err := m.executor.Run(ctx, "xcrun", "simctl", "help")
	return err == nil
}

// ListDevices implements DeviceManager by parsing `simctl list
// devices --json`: a devices map keyed by runtime identifier, each
// holding an array of device objects.
func (m *IOSManager) ListDevices(ctx context.Context) ([]device.Device, error) {
	output, err := m.executor.Run(ctx, "xcrun", "simctl", "list", "devices", "--json")
	if err != nil {
		return nil, NewCommandFailedError("failed to list simulators", "", err)
	}

	devices := parseSimctlDevices(output)
	device.SortIOSDevices(devices)

	result := make([]device.Device, len(devices))
	for i, d := range devices {
		result[i] = d
	}
	return result, nil
}

// parseSimctlDevices walks the simctl JSON without binding it to a
// rigid schema, so new fields in Xcode releases cannot break listing.
func parseSimctlDevices(jsonOutput string) []*device.IOSDevice {
	var devices []*device.IOSDevice

	gjson.Get(jsonOutput, "devices").ForEach(func(runtimeID, list gjson.Result) bool {
		version := iosVersionFromRuntime(runtimeID.String())
		list.ForEach(func(_, item gjson.Result) bool {
			name := item.Get("name").String()
			udid := item.Get("udid").String()
			if name == "" || udid == "" {
				return true
			}

			d := &device.IOSDevice{
				DisplayName:    name,
				UDID:           udid,
				DeviceType:     strings.TrimPrefix(item.Get("deviceTypeIdentifier").String(), simDeviceTypePrefix),
				IOSVersion:     version,
				RuntimeVersion: runtimeID.String(),
				Available:      item.Get("isAvailable").Bool(),
			}
			d.SetStatus(simctlStateToStatus(item.Get("state").String()))
			devices = append(devices, d)
			return true
		})
		return true
	})
	return devices
}

func simctlStateToStatus(state string) device.Status {
	switch state {
	case "Booted":
		return device.StatusRunning
	case "Shutdown":
		return device.StatusStopped
	case "Creating":
		return device.StatusCreating
	default:
		return device.StatusUnknown
	}
}

// iosVersionFromRuntime converts a runtime identifier such as
// "com.apple.CoreSimulator.SimRuntime.iOS-17-0" to "17.0".
func iosVersionFromRuntime(runtimeID string) string {
	suffix := strings.TrimPrefix(runtimeID, simRuntimePrefix)
	for _, os := range []string{"iOS-", "tvOS-", "watchOS-", "xrOS-"} {
		if strings.HasPrefix(suffix, os) {
			return strings.ReplaceAll(strings.TrimPrefix(suffix, os), "-", ".")
		}
	}
	return strings.ReplaceAll(suffix, "-", ".")
}

// ListDeviceTypes implements DeviceManager.
func (m *IOSManager) ListDeviceTypes(ctx context.Context) ([]CatalogEntry, error) {
	output, err := m.executor.Run(ctx, "xcrun", "simctl", "list", "devicetypes", "--json")
	if err != nil {
		return nil, NewCommandFailedError("failed to list device types", "", err)
	}

	var entries []CatalogEntry
	gjson.Get(output, "devicetypes").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("identifier").String()
		name := item.Get("name").String()
		if id != "" && name != "" {
			entries = append(entries, CatalogEntry{ID: id, Display: name})
		}
		return true
	})

	sort.SliceStable(entries, func(i, j int) bool {
		pi := device.IOSPriority(entries[i].Display)
		pj := device.IOSPriority(entries[j].Display)
		if pi != pj {
			return pi < pj
		}
		return entries[i].Display < entries[j].Display
	})
	return entries, nil
}

// ListOSVersions implements DeviceManager. Only available runtimes are
// offered; an unavailable runtime cannot back a new simulator.
func (m *IOSManager) ListOSVersions(ctx context.Context) ([]CatalogEntry, error) {
	output, err := m.executor.Run(ctx, "xcrun", "simctl", "list", "runtimes", "--json")
	if err != nil {
		return nil, NewCommandFailedError("failed to list runtimes", "", err)
	}

	var entries []CatalogEntry
	gjson.Get(output, "runtimes").ForEach(func(_, item gjson.Result) bool {
		if !item.Get("isAvailable").Bool() {
			return true
		}
		id := item.Get("identifier").String()
		name := item.Get("name").String()
		if id != "" && name != "" {
			entries = append(entries, CatalogEntry{ID: id, Display: name})
		}
		return true
	})
	return entries, nil
}

// CreateDevice implements DeviceManager. DeviceType and Version carry
// simctl identifiers straight from the catalogs.
func (m *IOSManager) CreateDevice(ctx context.Context, cfg device.Config) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return NewValidationError("device name is empty")
	}
	if cfg.DeviceType == "" || cfg.Version == "" {
		return NewValidationError("device type and runtime are required")
	}

	_, err := m.executor.Run(ctx, "xcrun", "simctl", "create", cfg.Name, cfg.DeviceType, cfg.Version)
	if err != nil {
		return NewCommandFailedError("failed to create simulator", cfg.Name, err)
	}
	logging.LogDeviceEvent("ios", cfg.Name, "created")
	return nil
}

// StartDevice implements DeviceManager. Booting an already booted
// simulator is a successful no-op.
func (m *IOSManager) StartDevice(ctx context.Context, id string) error {
	udid, err := m.resolveUDID(ctx, id)
	if err != nil {
		return err
	}

	_, err = m.executor.RunIgnoringErrors(ctx, "xcrun", []string{"simctl", "boot", udid}, bootIgnorePatterns)
	if err != nil {
		return NewCommandFailedError("failed to boot simulator", id, err)
	}
	logging.LogDeviceEvent("ios", id, "booted")
	return nil
}

// StopDevice implements DeviceManager. Shutting down an already
// stopped simulator is a successful no-op.
func (m *IOSManager) StopDevice(ctx context.Context, id string) error {
	udid, err := m.resolveUDID(ctx, id)
	if err != nil {
		return err
	}

	_, err = m.executor.RunIgnoringErrors(ctx, "xcrun", []string{"simctl", "shutdown", udid}, shutdownIgnorePatterns)
	if err != nil {
		return NewCommandFailedError("failed to shut down simulator", id, err)
	}
	logging.LogDeviceEvent("ios", id, "shut down")
	return nil
}

// WipeDevice implements DeviceManager. The simulator must be shut down
// before erase; a device already shut down passes through the ignore
// patterns.
func (m *IOSManager) WipeDevice(ctx context.Context, id string) error {
	udid, err := m.resolveUDID(ctx, id)
	if err != nil {
		return err
	}

	if err := m.StopDevice(ctx, id); err != nil {
		return err
	}
	_, err = m.executor.RunIgnoringErrors(ctx, "xcrun", []string{"simctl", "erase", udid}, shutdownIgnorePatterns)
	if err != nil {
		return NewCommandFailedError("failed to erase simulator", id, err)
	}
	logging.LogDeviceEvent("ios", id, "erased")
	return nil
}

// DeleteDevice implements DeviceManager.
func (m *IOSManager) DeleteDevice(ctx context.Context, id string) error {
	udid, err := m.resolveUDID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := m.executor.Run(ctx, "xcrun", "simctl", "delete", udid); err != nil {
		return NewCommandFailedError("failed to delete simulator", id, err)
	}
	logging.LogDeviceEvent("ios", id, "deleted")
	return nil
}

// resolveUDID accepts either a UDID or a display name. A UDID is
// returned unchanged; a name is resolved against the current listing.
// Ambiguous names resolve to the first match in priority order.
func (m *IOSManager) resolveUDID(ctx context.Context, id string) (string, error) {
	if looksLikeUDID(id) {
		return id, nil
	}

	devices, err := m.ListDevices(ctx)
	if err != nil {
		return "", err
	}
	for _, d := range devices {
		if d.Name() == id {
			return d.ID(), nil
		}
	}
	return "", NewNotFoundError(id)
}

// looksLikeUDID matches the 8-4-4-4-12 hex form simctl assigns.
func looksLikeUDID(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 5 {
		return false
	}
	lengths := []int{8, 4, 4, 4, 12}
	for i, p := range parts {
		if len(p) != lengths[i] {
			return false
		}
		for _, r := range p {
			isHex := (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
			if !isHex {
				return false
			}
		}
	}
	return true
}
