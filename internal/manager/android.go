package manager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/exec"
	"github.com/wasabeef/emu-sub003/internal/logging"
)

// emulatorStartArgs are the fixed flags for booting an AVD headed but
// quiet: no audio, no snapshot writes, no boot animation.
var emulatorStartArgs = []string{"-no-audio", "-no-snapshot-save", "-no-boot-anim", "-netfast"}

// AndroidManager manages Android Virtual Devices through the SDK
// command line tools. The SDK root is resolved once at construction
// from ANDROID_HOME, falling back to ANDROID_SDK_ROOT.
type AndroidManager struct {
	executor exec.Executor
	sdkRoot  string
	avdHome  string

	avdmanagerPath string
	emulatorPath   string
	adbPath        string
	sdkmanagerPath string
}

// NewAndroidManager resolves the SDK root and tool locations. It fails
// with an actionable message when no SDK root variable is set.
func NewAndroidManager(executor exec.Executor) (*AndroidManager, error) {
	sdkRoot := os.Getenv("ANDROID_HOME")
	if sdkRoot == "" {
		sdkRoot = os.Getenv("ANDROID_SDK_ROOT")
	}
	if sdkRoot == "" {
		return nil, NewToolNotFoundError("Android SDK not found: set ANDROID_HOME or ANDROID_SDK_ROOT")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, NewToolNotFoundError("cannot determine home directory for AVD storage")
	}

	m := &AndroidManager{
		executor: executor,
		sdkRoot:  sdkRoot,
		avdHome:  filepath.Join(home, ".android", "avd"),
	}
	m.avdmanagerPath = m.findTool("avdmanager",
		filepath.Join(sdkRoot, "cmdline-tools", "latest", "bin", "avdmanager"),
		filepath.Join(sdkRoot, "tools", "bin", "avdmanager"),
	)
	m.emulatorPath = m.findTool("emulator",
		filepath.Join(sdkRoot, "emulator", "emulator"),
	)
	m.adbPath = m.findTool("adb",
		filepath.Join(sdkRoot, "platform-tools", "adb"),
	)
	m.sdkmanagerPath = m.findTool("sdkmanager",
		filepath.Join(sdkRoot, "cmdline-tools", "latest", "bin", "sdkmanager"),
		filepath.Join(sdkRoot, "tools", "bin", "sdkmanager"),
	)
	return m, nil
}

// findTool returns the first candidate path that exists, falling back
// to the bare name so PATH resolution still has a chance.
func (m *AndroidManager) findTool(name string, candidates ...string) string {
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return name
}

// Platform implements DeviceManager.
func (m *AndroidManager) Platform() device.Platform { return device.PlatformAndroid }

// IsAvailable implements DeviceManager.
func (m *AndroidManager) IsAvailable(ctx context.Context) bool {
	_, err := m.executor.Run(ctx, m.adbPath, "version")
	return err == nil
}

// ListDevices implements DeviceManager. Running state is resolved by
// matching adb emulator serials back to AVD names.
func (m *AndroidManager) ListDevices(ctx context.Context) ([]device.Device, error) {
	output, err := m.executor.Run(ctx, m.avdmanagerPath, "list", "avd")
	if err != nil {
		return nil, NewCommandFailedError("failed to list virtual devices", "", err)
	}

	devices := parseAVDList(output)
	running := m.runningAVDs(ctx)
	for _, d := range devices {
		if _, ok := running[d.AVDName]; ok {
			d.SetStatus(device.StatusRunning)
		} else {
			d.SetStatus(device.StatusStopped)
		}
	}
	device.SortAndroidDevices(devices)

	result := make([]device.Device, len(devices))
	for i, d := range devices {
		result[i] = d
	}
	return result, nil
}

var apiLevelPattern = regexp.MustCompile(`API level (\d+)`)

// parseAVDList turns `avdmanager list avd` free text into device
// records. The format is line oriented with implicit state: a record
// starts at a Name: line, accumulates Device:/Path:/Target: keys and
// the indented "Based on:" continuation, and is emitted at a dashed
// separator or at end of input. Unrecognized lines are ignored and a
// record without a name is dropped rather than failing the listing.
func parseAVDList(output string) []*device.AndroidDevice {
	var devices []*device.AndroidDevice
	var current *device.AndroidDevice
	var target strings.Builder

	emit := func() {
		if current == nil {
			return
		}
		if current.APILevel == 0 {
			current.APILevel = apiLevelFromTarget(target.String())
		}
		if current.APILevel == 0 {
			current.APILevel = apiLevelFromName(current.AVDName)
		}
		devices = append(devices, current)
		current = nil
		target.Reset()
	}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "Name:"):
			emit()
			name := strings.TrimSpace(strings.TrimPrefix(trimmed, "Name:"))
			if name != "" {
				current = &device.AndroidDevice{AVDName: name}
			}
		case current == nil:
			// Header and separator noise before the first record.
		case strings.HasPrefix(trimmed, "Device:"):
			value := strings.TrimSpace(strings.TrimPrefix(trimmed, "Device:"))
			// "pixel_7 (Pixel 7)" carries the id before the display name.
			if idx := strings.Index(value, " ("); idx > 0 {
				value = value[:idx]
			}
			current.DeviceType = value
		case strings.HasPrefix(trimmed, "Target:"):
			target.WriteString(strings.TrimSpace(strings.TrimPrefix(trimmed, "Target:")))
		case strings.HasPrefix(trimmed, "Based on:"):
			target.WriteString(" ")
			target.WriteString(trimmed)
		case strings.HasPrefix(trimmed, "---------"):
			emit()
		}
	}
	emit()
	return devices
}

func apiLevelFromTarget(target string) int {
	match := apiLevelPattern.FindStringSubmatch(target)
	if match == nil {
		return 0
	}
	level, _ := strconv.Atoi(match[1])
	return level
}

var apiNamePattern = regexp.MustCompile(`(?i)API[_ ](\d+)`)

func apiLevelFromName(name string) int {
	match := apiNamePattern.FindStringSubmatch(name)
	if match == nil {
		return 0
	}
	level, _ := strconv.Atoi(match[1])
	return level
}

// runningAVDs maps running AVD names to their emulator serials. Any
// failure degrades to "nothing running"; a stale adb never blocks the
// device listing.
func (m *AndroidManager) runningAVDs(ctx context.Context) map[string]string {
	running := make(map[string]string)

	output, err := m.executor.Run(ctx, m.adbPath, "devices")
	if err != nil {
		logging.Debug("adb devices failed, treating all devices as stopped")
		return running
	}

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Split(strings.TrimSpace(line), "\t")
		if len(fields) != 2 || fields[1] != "device" {
			continue
		}
		serial := fields[0]
		if !strings.HasPrefix(serial, "emulator-") {
			continue
		}
		if name := m.avdNameForSerial(ctx, serial); name != "" {
			running[name] = serial
		}
	}
	return running
}

// avdNameForSerial asks a running emulator for its AVD name. Only the
// first output line is the name; the trailing "OK" protocol line and
// error text are rejected.
func (m *AndroidManager) avdNameForSerial(ctx context.Context, serial string) string {
	output, err := m.executor.Run(ctx, m.adbPath, "-s", serial, "emu", "avd", "name")
	if err != nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) == 0 {
		return ""
	}
	name := strings.TrimSpace(lines[0])
	if name == "" || name == "OK" || name == "KO" || strings.Contains(name, "error") {
		return ""
	}
	return name
}

// ListDeviceTypes implements DeviceManager using `avdmanager list
// device`, which shares the separator discipline of the AVD listing.
func (m *AndroidManager) ListDeviceTypes(ctx context.Context) ([]CatalogEntry, error) {
	output, err := m.executor.Run(ctx, m.avdmanagerPath, "list", "device")
	if err != nil {
		return nil, NewCommandFailedError("failed to list device types", "", err)
	}

	entries := parseDeviceTypeList(output)
	sort.SliceStable(entries, func(i, j int) bool {
		pi := device.AndroidPriority(entries[i].ID, entries[i].Display)
		pj := device.AndroidPriority(entries[j].ID, entries[j].Display)
		if pi != pj {
			return pi < pj
		}
		return entries[i].Display < entries[j].Display
	})
	return entries, nil
}

var deviceIDPattern = regexp.MustCompile(`id: \d+ or "([^"]+)"`)

func parseDeviceTypeList(output string) []CatalogEntry {
	var entries []CatalogEntry
	var current CatalogEntry

	emit := func() {
		if current.ID != "" && current.Display != "" {
			entries = append(entries, current)
		}
		current = CatalogEntry{}
	}

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "id:"):
			emit()
			if match := deviceIDPattern.FindStringSubmatch(trimmed); match != nil {
				current.ID = match[1]
			}
		case strings.HasPrefix(trimmed, "Name:"):
			current.Display = strings.TrimSpace(strings.TrimPrefix(trimmed, "Name:"))
		case strings.HasPrefix(trimmed, "---------"):
			emit()
		}
	}
	emit()
	return entries
}

// ListOSVersions implements DeviceManager. API levels are derived from
// the system images already installed, since only those can back a new
// AVD without a download.
func (m *AndroidManager) ListOSVersions(ctx context.Context) ([]CatalogEntry, error) {
	images, err := m.installedSystemImages(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	var levels []int
	for _, img := range images {
		if !seen[img.apiLevel] {
			seen[img.apiLevel] = true
			levels = append(levels, img.apiLevel)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(levels)))

	entries := make([]CatalogEntry, len(levels))
	for i, level := range levels {
		entries[i] = CatalogEntry{
			ID:      strconv.Itoa(level),
			Display: fmt.Sprintf("API %d", level),
		}
	}
	return entries, nil
}

// systemImage is one installed system-images package.
type systemImage struct {
	pkg      string
	apiLevel int
	tag      string
	abi      string
}

var systemImagePattern = regexp.MustCompile(`^system-images;android-(\d+);([^;]+);(\S+)`)

// installedSystemImages parses `sdkmanager --list`, keeping only rows
// in the "Installed packages:" section.
func (m *AndroidManager) installedSystemImages(ctx context.Context) ([]systemImage, error) {
	output, err := m.executor.Run(ctx, m.sdkmanagerPath, "--list")
	if err != nil {
		return nil, NewCommandFailedError("failed to list system images", "", err)
	}

	var images []systemImage
	inInstalled := false
	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "Installed packages:") {
			inInstalled = true
			continue
		}
		if strings.HasPrefix(trimmed, "Available Packages:") {
			inInstalled = false
			continue
		}
		if !inInstalled {
			continue
		}

		match := systemImagePattern.FindStringSubmatch(trimmed)
		if match == nil {
			continue
		}
		level, _ := strconv.Atoi(match[1])
		images = append(images, systemImage{
			pkg:      strings.Fields(match[0])[0],
			apiLevel: level,
			tag:      match[2],
			abi:      match[3],
		})
	}
	return images, nil
}

// preferredSystemImage picks the best installed image for an API
// level: google_apis over other tags, arm64-v8a over x86_64.
func (m *AndroidManager) preferredSystemImage(ctx context.Context, apiLevel int) (string, error) {
	images, err := m.installedSystemImages(ctx)
	if err != nil {
		return "", err
	}

	var candidates []systemImage
	for _, img := range images {
		if img.apiLevel == apiLevel {
			candidates = append(candidates, img)
		}
	}
	if len(candidates) == 0 {
		return "", NewValidationError(fmt.Sprintf("no system image installed for API %d", apiLevel))
	}

	score := func(img systemImage) int {
		s := 0
		if img.tag == "google_apis" {
			s += 10
		}
		if img.abi == "arm64-v8a" {
			s += 2
		} else if img.abi == "x86_64" {
			s++
		}
		return s
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if score(c) > score(best) {
			best = c
		}
	}
	return best.pkg, nil
}

// SanitizeAVDName converts a display name to a legal AVD name: spaces
// become underscores and anything outside [A-Za-z0-9._-] is dropped.
func SanitizeAVDName(name string) string {
	var b strings.Builder
	for _, r := range strings.ReplaceAll(name, " ", "_") {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CreateDevice implements DeviceManager. The name is sanitized and
// checked against existing AVDs before any tool is spawned.
func (m *AndroidManager) CreateDevice(ctx context.Context, cfg device.Config) error {
	name := SanitizeAVDName(cfg.Name)
	if name == "" {
		return NewValidationError("device name is empty after removing invalid characters")
	}

	existing, err := m.ListDevices(ctx)
	if err != nil {
		return err
	}
	for _, d := range existing {
		if d.Name() == name {
			return NewValidationError(fmt.Sprintf("device %q already exists", name))
		}
	}

	apiLevel, err := strconv.Atoi(cfg.Version)
	if err != nil {
		return NewValidationError(fmt.Sprintf("invalid API level %q", cfg.Version))
	}
	image, err := m.preferredSystemImage(ctx, apiLevel)
	if err != nil {
		return err
	}

	args := []string{"create", "avd", "-n", name, "-k", image}
	if cfg.DeviceType != "" {
		args = append(args, "-d", cfg.DeviceType)
	}
	if _, err := m.executor.Run(ctx, m.avdmanagerPath, args...); err != nil {
		return NewCommandFailedError("failed to create device", name, err)
	}
	logging.LogDeviceEvent("android", name, "created")

	if cfg.RAMSize != "" || cfg.StorageSize != "" {
		if err := m.updateConfigINI(name, cfg.RAMSize, cfg.StorageSize); err != nil {
			logging.Warn(fmt.Sprintf("created %s but could not apply hardware config: %v", name, err))
		}
	}
	return nil
}

// updateConfigINI rewrites RAM and storage keys in the AVD's
// config.ini after creation, since avdmanager has no flags for them.
func (m *AndroidManager) updateConfigINI(name, ramMB, storageMB string) error {
	path := filepath.Join(m.avdHome, name+".avd", "config.ini")
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	content := string(data)
	if ramMB != "" {
		content = setINIKey(content, "hw.ramSize", ramMB)
	}
	if storageMB != "" {
		content = setINIKey(content, "disk.dataPartition.size", storageMB+"M")
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func setINIKey(content, key, value string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), key+"=") {
			lines[i] = key + "=" + value
			return strings.Join(lines, "\n")
		}
	}
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	lines = append(lines, key+"="+value, "")
	return strings.Join(lines, "\n")
}

// StartDevice implements DeviceManager. The emulator is spawned
// detached; boot completion is observed through subsequent listings.
func (m *AndroidManager) StartDevice(ctx context.Context, id string) error {
	if err := m.requireDevice(ctx, id); err != nil {
		return err
	}

	args := append([]string{"-avd", id}, emulatorStartArgs...)
	pid, err := m.executor.Spawn(ctx, m.emulatorPath, args...)
	if err != nil {
		return NewCommandFailedError("failed to start emulator", id, err)
	}
	logging.LogDeviceEvent("android", id, fmt.Sprintf("started (pid %d)", pid))
	return nil
}

// StopDevice implements DeviceManager. Shutdown is attempted
// gracefully first (ACTION_SHUTDOWN broadcast, then reboot -p) and
// falls back to killing the emulator process over the console port.
// Stopping a device that is not running is a no-op.
func (m *AndroidManager) StopDevice(ctx context.Context, id string) error {
	serial, ok := m.runningAVDs(ctx)[id]
	if !ok {
		return nil
	}

	if _, err := m.executor.Run(ctx, m.adbPath, "-s", serial, "shell", "am", "broadcast", "-a", "android.intent.action.ACTION_SHUTDOWN"); err == nil {
		logging.LogDeviceEvent("android", id, "shutdown broadcast sent")
	}
	if _, err := m.executor.Run(ctx, m.adbPath, "-s", serial, "reboot", "-p"); err == nil {
		logging.LogDeviceEvent("android", id, "stopped")
		return nil
	}
	if _, err := m.executor.Run(ctx, m.adbPath, "-s", serial, "emu", "kill"); err != nil {
		return NewCommandFailedError("failed to stop emulator", id, err)
	}
	logging.LogDeviceEvent("android", id, "stopped (killed)")
	return nil
}

// userDataFiles are the per-AVD files removed by a wipe. Hardware
// config (config.ini) is deliberately preserved.
var userDataFiles = []string{
	"userdata.img",
	"userdata-qemu.img",
	"userdata-qemu.img.qcow2",
	"cache.img",
	"cache.img.qcow2",
}

// WipeDevice implements DeviceManager. A running device is stopped
// first; the wipe then removes user data images and snapshots from the
// AVD directory, leaving the device definition intact.
func (m *AndroidManager) WipeDevice(ctx context.Context, id string) error {
	if err := m.requireDevice(ctx, id); err != nil {
		return err
	}
	if err := m.StopDevice(ctx, id); err != nil {
		return err
	}

	avdDir := filepath.Join(m.avdHome, id+".avd")
	for _, f := range userDataFiles {
		if err := os.Remove(filepath.Join(avdDir, f)); err != nil && !os.IsNotExist(err) {
			return NewCommandFailedError("failed to remove user data", id, err)
		}
	}
	if err := os.RemoveAll(filepath.Join(avdDir, "snapshots")); err != nil {
		return NewCommandFailedError("failed to remove snapshots", id, err)
	}
	logging.LogDeviceEvent("android", id, "wiped")
	return nil
}

// DeleteDevice implements DeviceManager.
func (m *AndroidManager) DeleteDevice(ctx context.Context, id string) error {
	output, err := m.executor.Run(ctx, m.avdmanagerPath, "delete", "avd", "-n", id)
	if err != nil {
		if strings.Contains(err.Error(), "There is no Android Virtual Device") ||
			strings.Contains(output, "There is no Android Virtual Device") {
			return NewNotFoundError(id)
		}
		return NewCommandFailedError("failed to delete device", id, err)
	}
	logging.LogDeviceEvent("android", id, "deleted")
	return nil
}

// requireDevice returns a not-found error when no AVD with the given
// name exists.
func (m *AndroidManager) requireDevice(ctx context.Context, id string) error {
	devices, err := m.ListDevices(ctx)
	if err != nil {
		return err
	}
	for _, d := range devices {
		if d.Name() == id {
			return nil
		}
	}
	return NewNotFoundError(id)
}
