package cfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:         "8080",
		MaxFiles:     20,
		APIAccessKey: "test-key",
		Timezone:     "UTC",
		Debug:        true,
		Version:      "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.MaxFiles != 20 {
		t.Errorf("Expected max files 20, got %d", cfg.MaxFiles)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Expected timezone 'UTC', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}

func TestApplyFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9090\"\nmax_files: 5\napi_key: file-key\ndebug: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Expected temp config write, got: %v", err)
	}

	raw := rawCfg{
		Port:     defaultPort,
		MaxFiles: defaultMaxFiles,
		Timezone: defaultTimezone,
	}

	if err := applyFile(&raw, path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if raw.Port != "9090" {
		t.Errorf("Expected file port '9090', got '%s'", raw.Port)
	}
	if raw.MaxFiles != 5 {
		t.Errorf("Expected file max files 5, got %d", raw.MaxFiles)
	}
	if raw.APIAccessKey != "file-key" {
		t.Errorf("Expected file API key, got '%s'", raw.APIAccessKey)
	}
	if !raw.Debug {
		t.Error("Expected file debug setting applied")
	}
}

func TestApplyFileDoesNotOverrideFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "port: \"9090\"\nmax_files: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Expected temp config write, got: %v", err)
	}

	// Values changed from their defaults came from flags or env; the file
	// must not win over them.
	raw := rawCfg{
		Port:     "3000",
		MaxFiles: 50,
		Timezone: defaultTimezone,
	}

	if err := applyFile(&raw, path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if raw.Port != "3000" {
		t.Errorf("Expected flag port kept, got '%s'", raw.Port)
	}
	if raw.MaxFiles != 50 {
		t.Errorf("Expected flag max files kept, got %d", raw.MaxFiles)
	}
}

func TestApplyFileMissing(t *testing.T) {
	raw := rawCfg{}
	if err := applyFile(&raw, "/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
