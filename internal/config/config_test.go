package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v, want defaults for a missing file", err)
	}
	if !cfg.Cache.Enabled {
		t.Error("default Cache.Enabled = false, want true")
	}
	if cfg.Defaults.RAMSize != "2048" {
		t.Errorf("default RAMSize = %q, want %q", cfg.Defaults.RAMSize, "2048")
	}
}

func TestLoadFrom_MalformedFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() error = nil for malformed YAML, want error")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.Cache.Enabled = false
	cfg.Defaults.RAMSize = "4096"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.LogLevel != "debug" || loaded.Cache.Enabled || loaded.Defaults.RAMSize != "4096" {
		t.Errorf("round trip = %+v", loaded)
	}
}

func TestLoadFrom_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if cfg.Defaults.StorageSize != "8192" {
		t.Errorf("StorageSize = %q, want the default kept", cfg.Defaults.StorageSize)
	}
}
