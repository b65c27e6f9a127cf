package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marmos91/fusekit/internal/bytesize"
)

// yamlSafePath converts a filesystem path to a YAML-safe representation.
// On Windows, backslashes in double-quoted YAML strings are interpreted as
// escape sequences (e.g. \U -> Unicode escape), causing parse errors.
func yamlSafePath(p string) string {
	return filepath.ToSlash(p)
}

func TestLoad_DefaultConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Write minimal config; everything else should come from defaults
	configContent := `
logging:
  level: "INFO"

mount:
  path: "` + yamlSafePath(tmpDir) + `/mnt"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify defaults were applied
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected default output 'stdout', got %q", cfg.Logging.Output)
	}
	if cfg.Mount.FSName != "fusekit" {
		t.Errorf("Expected default fs_name 'fusekit', got %q", cfg.Mount.FSName)
	}
	if cfg.Mount.AttrTimeout != time.Second {
		t.Errorf("Expected default attr_timeout 1s, got %v", cfg.Mount.AttrTimeout)
	}
	if cfg.Mount.EntryTimeout != time.Second {
		t.Errorf("Expected default entry_timeout 1s, got %v", cfg.Mount.EntryTimeout)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config.
	// This allows quick testing without writing a config file first.
	tmpDir := t.TempDir()
	nonExistentPath := filepath.Join(tmpDir, "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}
	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected default log level INFO, got %q", cfg.Logging.Level)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	configContent := `
logging:
  level: INFO
  invalid yaml here [[[
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_DecodeHooks(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// max_write uses a human-readable size, timeouts use duration strings
	configContent := `
mount:
  path: "` + yamlSafePath(tmpDir) + `/mnt"
  max_write: 1Mi
  attr_timeout: 2s
  entry_timeout: 500ms
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Mount.MaxWrite != bytesize.MiB {
		t.Errorf("Expected max_write 1Mi, got %v", cfg.Mount.MaxWrite)
	}
	if cfg.Mount.AttrTimeout != 2*time.Second {
		t.Errorf("Expected attr_timeout 2s, got %v", cfg.Mount.AttrTimeout)
	}
	if cfg.Mount.EntryTimeout != 500*time.Millisecond {
		t.Errorf("Expected entry_timeout 500ms, got %v", cfg.Mount.EntryTimeout)
	}
}

func TestLoad_TreeEntries(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
mount:
  path: "` + yamlSafePath(tmpDir) + `/mnt"

tree:
  - path: /readme.txt
    content: "hello"
    mode: "0644"
    uid: 1000
  - path: /docs/guide.txt
    content: "guide"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.Tree) != 2 {
		t.Fatalf("Expected 2 tree entries, got %d", len(cfg.Tree))
	}
	if cfg.Tree[0].Mode != "0644" {
		t.Errorf("Expected mode 0644, got %q", cfg.Tree[0].Mode)
	}
	if cfg.Tree[0].UID == nil || *cfg.Tree[0].UID != 1000 {
		t.Errorf("Expected uid 1000, got %v", cfg.Tree[0].UID)
	}
	if cfg.Tree[0].GID != nil {
		t.Errorf("Expected nil gid, got %v", cfg.Tree[0].GID)
	}
	// Defaults fill the second entry's mode
	if cfg.Tree[1].Mode != "0444" {
		t.Errorf("Expected default mode 0444, got %q", cfg.Tree[1].Mode)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "saved", "config.yaml")

	orig := GetDefaultConfig()
	orig.Logging.Level = "DEBUG"
	orig.Mount.Path = "/mnt/somewhere"

	if err := SaveConfig(orig, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}

	if loaded.Logging.Level != "DEBUG" {
		t.Errorf("Expected log level DEBUG after round trip, got %q", loaded.Logging.Level)
	}
	if loaded.Mount.Path != "/mnt/somewhere" {
		t.Errorf("Expected mount path /mnt/somewhere after round trip, got %q", loaded.Mount.Path)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
logging:
  level: "LOUD"

mount:
  path: "` + yamlSafePath(tmpDir) + `/mnt"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected validation error for bogus log level")
	}
}
