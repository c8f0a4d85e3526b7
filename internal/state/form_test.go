package state

import (
	"testing"

	"github.com/wasabeef/emu-sub003/internal/device"
	"github.com/wasabeef/emu-sub003/internal/manager"
)

func androidCatalogs() ([]manager.CatalogEntry, []manager.CatalogEntry) {
	apiLevels := []manager.CatalogEntry{
		{ID: "34", Display: "API 34"},
		{ID: "33", Display: "API 33"},
	}
	deviceTypes := []manager.CatalogEntry{
		{ID: "pixel_7", Display: "Pixel 7"},
		{ID: "pixel_tablet", Display: "Pixel Tablet"},
	}
	return apiLevels, deviceTypes
}

func TestCreateForm_FieldCycling(t *testing.T) {
	android := NewCreateForm(device.PlatformAndroid)

	want := []FormField{FieldCategory, FieldDeviceType, FieldRAM, FieldStorage, FieldName, FieldAPILevel}
	for _, field := range want {
		android.NextField()
		if android.Field != field {
			t.Fatalf("NextField() landed on %v, want %v", android.Field, field)
		}
	}

	android.PrevField()
	if android.Field != FieldName {
		t.Errorf("PrevField() from the first field = %v, want wrap to Name", android.Field)
	}
}

func TestCreateForm_IOSFieldCycling(t *testing.T) {
	ios := NewCreateForm(device.PlatformIOS)

	want := []FormField{FieldDeviceType, FieldName, FieldAPILevel}
	for _, field := range want {
		ios.NextField()
		if ios.Field != field {
			t.Fatalf("NextField() landed on %v, want %v (no RAM/storage on iOS)", ios.Field, field)
		}
	}
}

func TestCreateForm_PlaceholderName(t *testing.T) {
	f := NewCreateForm(device.PlatformAndroid)
	apiLevels, deviceTypes := androidCatalogs()
	f.SetCatalogs(apiLevels, deviceTypes)

	if got := f.PlaceholderName(); got != "Pixel 7 API 34" {
		t.Errorf("PlaceholderName() = %q, want %q", got, "Pixel 7 API 34")
	}

	f.Field = FieldAPILevel
	f.CycleSelection(1)
	if got := f.PlaceholderName(); got != "Pixel 7 API 33" {
		t.Errorf("PlaceholderName() = %q after cycling, want %q", got, "Pixel 7 API 33")
	}
}

func TestCreateForm_EffectiveName(t *testing.T) {
	f := NewCreateForm(device.PlatformAndroid)
	apiLevels, deviceTypes := androidCatalogs()
	f.SetCatalogs(apiLevels, deviceTypes)

	if got := f.EffectiveName(); got != "Pixel 7 API 34" {
		t.Errorf("EffectiveName() = %q, want the placeholder", got)
	}

	f.Name = "My Phone"
	if got := f.EffectiveName(); got != "My Phone" {
		t.Errorf("EffectiveName() = %q, want the typed name", got)
	}
}

func TestCreateForm_FilteredDeviceTypes(t *testing.T) {
	f := NewCreateForm(device.PlatformAndroid)
	apiLevels, deviceTypes := androidCatalogs()
	f.SetCatalogs(apiLevels, deviceTypes)

	phones := f.FilteredDeviceTypes()
	if len(phones) != 1 || phones[0].ID != "pixel_7" {
		t.Errorf("phone filter = %+v, want only pixel_7", phones)
	}

	f.Field = FieldCategory
	f.CycleSelection(1) // Phone -> Tablet
	tablets := f.FilteredDeviceTypes()
	if len(tablets) != 1 || tablets[0].ID != "pixel_tablet" {
		t.Errorf("tablet filter = %+v, want only pixel_tablet", tablets)
	}
}

func TestCreateForm_ToConfig(t *testing.T) {
	f := NewCreateForm(device.PlatformAndroid)
	apiLevels, deviceTypes := androidCatalogs()
	f.SetCatalogs(apiLevels, deviceTypes)
	f.RAM = "2048"
	f.Storage = "8192"

	cfg, ok := f.ToConfig()
	if !ok {
		t.Fatal("ToConfig() ok = false with catalogs loaded")
	}
	if cfg.Name != "Pixel 7 API 34" || cfg.DeviceType != "pixel_7" || cfg.Version != "34" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.RAMSize != "2048" || cfg.StorageSize != "8192" {
		t.Errorf("cfg sizes = %q/%q", cfg.RAMSize, cfg.StorageSize)
	}
}

func TestCreateForm_ToConfigWithoutCatalogs(t *testing.T) {
	f := NewCreateForm(device.PlatformIOS)
	if _, ok := f.ToConfig(); ok {
		t.Error("ToConfig() ok = true with empty catalogs")
	}
}

func TestCreateForm_Errors(t *testing.T) {
	f := NewCreateForm(device.PlatformAndroid)

	f.SetError(FieldRAM, "RAM must be between 512 and 8192 MB")
	if !f.HasErrors() {
		t.Error("HasErrors() = false after SetError")
	}

	f.SetError(FieldRAM, "")
	if f.HasErrors() {
		t.Error("HasErrors() = true after clearing the only error")
	}
}

func TestCreateForm_SetCatalogsClampsSelections(t *testing.T) {
	f := NewCreateForm(device.PlatformAndroid)
	apiLevels, deviceTypes := androidCatalogs()
	f.SetCatalogs(apiLevels, deviceTypes)
	f.APILevelIndex = 1
	f.DeviceTypeIndex = 1

	f.SetCatalogs(apiLevels[:1], deviceTypes[:1])
	if f.APILevelIndex != 0 || f.DeviceTypeIndex != 0 {
		t.Errorf("indices = %d/%d after catalog shrink, want 0/0", f.APILevelIndex, f.DeviceTypeIndex)
	}
}
