package state

import (
	"fmt"
	"strings"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/manager"
)

// FormField identifies one input of the device creation form.
type FormField int

const (
	FieldAPILevel FormField = iota
	FieldCategory
	FieldDeviceType
	FieldRAM
	FieldStorage
	FieldName
)

// String returns a human-readable name for the field
func (f FormField) String() string {
	switch f {
	case FieldAPILevel:
		return "OS Version"
	case FieldCategory:
		return "Category"
	case FieldDeviceType:
		return "Device Type"
	case FieldRAM:
		return "RAM (MB)"
	case FieldStorage:
		return "Storage (MB)"
	case FieldName:
		return "Name"
	default:
		return "?"
	}
}

// androidFieldOrder and iosFieldOrder define tab cycling. iOS has no
// category, RAM, or storage inputs.
var (
	androidFieldOrder = []FormField{FieldAPILevel, FieldCategory, FieldDeviceType, FieldRAM, FieldStorage, FieldName}
	iosFieldOrder     = []FormField{FieldAPILevel, FieldDeviceType, FieldName}
)

// CreateForm holds the in-progress device creation input. Catalog
// selections are indices into the entry slices loaded from the
// metadata cache.
type CreateForm struct {
	Platform device.Platform
	Field    FormField

	APILevels   []manager.CatalogEntry
	DeviceTypes []manager.CatalogEntry

	APILevelIndex   int
	CategoryIndex   int
	DeviceTypeIndex int

	RAM     string
	Storage string
	Name    string

	Errors map[FormField]string

	Creating       bool
	LoadingCatalog bool
}

// NewCreateForm starts an empty form on the first field.
func NewCreateForm(platform device.Platform) *CreateForm {
	return &CreateForm{
		Platform: platform,
		Field:    FieldAPILevel,
		Errors:   make(map[FormField]string),
	}
}

func (f *CreateForm) fieldOrder() []FormField {
	if f.Platform == device.PlatformIOS {
		return iosFieldOrder
	}
	return androidFieldOrder
}

// NextField advances the focused field, wrapping to the first.
func (f *CreateForm) NextField() {
	f.Field = f.cycleField(1)
}

// PrevField moves the focused field back, wrapping to the last.
func (f *CreateForm) PrevField() {
	f.Field = f.cycleField(-1)
}

func (f *CreateForm) cycleField(step int) FormField {
	order := f.fieldOrder()
	idx := 0
	for i, field := range order {
		if field == f.Field {
			idx = i
			break
		}
	}
	return order[((idx+step)%len(order)+len(order))%len(order)]
}

// SetCatalogs installs the cached catalogs, clamping selections.
func (f *CreateForm) SetCatalogs(apiLevels, deviceTypes []manager.CatalogEntry) {
	f.APILevels = apiLevels
	f.DeviceTypes = deviceTypes
	f.APILevelIndex = clampCursor(f.APILevelIndex, len(apiLevels))
	f.DeviceTypeIndex = clampCursor(f.DeviceTypeIndex, len(deviceTypes))
	f.LoadingCatalog = false
}

// SelectedAPILevel returns the chosen OS version entry, ok=false when
// the catalog is empty.
func (f *CreateForm) SelectedAPILevel() (manager.CatalogEntry, bool) {
	if len(f.APILevels) == 0 {
		return manager.CatalogEntry{}, false
	}
	return f.APILevels[f.APILevelIndex], true
}

// SelectedDeviceType returns the chosen device type entry.
func (f *CreateForm) SelectedDeviceType() (manager.CatalogEntry, bool) {
	if len(f.DeviceTypes) == 0 {
		return manager.CatalogEntry{}, false
	}
	return f.DeviceTypes[f.DeviceTypeIndex], true
}

// CycleSelection moves the selection of the focused catalog field.
func (f *CreateForm) CycleSelection(step int) {
	switch f.Field {
	case FieldAPILevel:
		f.APILevelIndex = cycleIndex(f.APILevelIndex, step, len(f.APILevels))
	case FieldDeviceType:
		f.DeviceTypeIndex = cycleIndex(f.DeviceTypeIndex, step, len(f.DeviceTypes))
	case FieldCategory:
		f.CategoryIndex = cycleIndex(f.CategoryIndex, step, len(formCategories))
	}
}

func cycleIndex(idx, step, length int) int {
	if length == 0 {
		return 0
	}
	return ((idx+step)%length + length) % length
}

// formCategories are the device type filters offered on the Android
// form, in display order.
var formCategories = []device.Category{
	device.CategoryPhone,
	device.CategoryTablet,
	device.CategoryWear,
	device.CategoryTV,
	device.CategoryAutomotive,
	device.CategoryDesktop,
}

// SelectedCategory returns the device type filter.
func (f *CreateForm) SelectedCategory() device.Category {
	return formCategories[cycleIndex(f.CategoryIndex, 0, len(formCategories))]
}

// FilteredDeviceTypes returns the device type entries matching the
// selected category. iOS forms are not filtered.
func (f *CreateForm) FilteredDeviceTypes() []manager.CatalogEntry {
	if f.Platform == device.PlatformIOS {
		return f.DeviceTypes
	}
	want := f.SelectedCategory()
	var out []manager.CatalogEntry
	for _, e := range f.DeviceTypes {
		if device.Categorize(e.ID, e.Display) == want {
			out = append(out, e)
		}
	}
	return out
}

// PlaceholderName derives a default device name from the current
// selections, e.g. "Pixel 7 API 34".
func (f *CreateForm) PlaceholderName() string {
	deviceType, okType := f.SelectedDeviceType()
	version, okVersion := f.SelectedAPILevel()
	if !okType {
		return ""
	}

	name := deviceType.Display
	if okVersion {
		if f.Platform == device.PlatformIOS {
			name = fmt.Sprintf("%s (%s)", name, version.Display)
		} else {
			name = fmt.Sprintf("%s %s", name, version.Display)
		}
	}
	return name
}

// EffectiveName returns the typed name, falling back to the
// placeholder.
func (f *CreateForm) EffectiveName() string {
	if strings.TrimSpace(f.Name) != "" {
		return f.Name
	}
	return f.PlaceholderName()
}

// SetError records a validation error for a field; empty clears it.
func (f *CreateForm) SetError(field FormField, msg string) {
	if msg == "" {
		delete(f.Errors, field)
		return
	}
	f.Errors[field] = msg
}

// HasErrors reports whether any field failed validation.
func (f *CreateForm) HasErrors() bool {
	return len(f.Errors) > 0
}

// ToConfig assembles the creation request from the form.
func (f *CreateForm) ToConfig() (device.Config, bool) {
	deviceType, okType := f.SelectedDeviceType()
	version, okVersion := f.SelectedAPILevel()
	if !okType || !okVersion {
		return device.Config{}, false
	}

	cfg := device.NewConfig(f.EffectiveName(), deviceType.ID, version.ID)
	if f.RAM != "" {
		cfg = cfg.WithRAM(f.RAM)
	}
	if f.Storage != "" {
		cfg = cfg.WithStorage(f.Storage)
	}
	return cfg, true
}
