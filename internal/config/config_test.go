package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServerURL != "http://localhost:11130" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if !cfg.Stream {
		t.Error("Stream should default to true")
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want 120", cfg.TimeoutSeconds)
	}
	if cfg.Token != "" {
		t.Error("Token should default to empty")
	}
	if cfg.Markdown.Style != "dark" {
		t.Errorf("Markdown.Style = %q, want dark", cfg.Markdown.Style)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	cfg := DefaultConfig()
	cfg.ServerURL = "http://example.com:8000"
	cfg.DefaultModel = "openai/gpt-4o"
	cfg.Verbose = true

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	// Config file should be created with restrictive permissions
	path := filepath.Join(tmpHome, ".gptmecli", "config.json")
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded.ServerURL != cfg.ServerURL {
		t.Errorf("ServerURL = %q, want %q", loaded.ServerURL, cfg.ServerURL)
	}
	if loaded.DefaultModel != cfg.DefaultModel {
		t.Errorf("DefaultModel = %q, want %q", loaded.DefaultModel, cfg.DefaultModel)
	}
	if !loaded.Verbose {
		t.Error("Verbose not round-tripped")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServerURL != DefaultConfig().ServerURL {
		t.Errorf("expected defaults, got ServerURL = %q", cfg.ServerURL)
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir := filepath.Join(tmpHome, ".gptmecli")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for corrupt config file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvServerURL, "http://envhost:9000")
	t.Setenv(EnvToken, "secret-token")
	t.Setenv(EnvModel, "anthropic/claude-sonnet")
	t.Setenv(EnvTimeout, "30")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.ServerURL != "http://envhost:9000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Token != "secret-token" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.DefaultModel != "anthropic/claude-sonnet" {
		t.Errorf("DefaultModel = %q", cfg.DefaultModel)
	}
	if cfg.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d", cfg.TimeoutSeconds)
	}
}

func TestEnvTimeoutInvalidIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvTimeout, "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want default 120", cfg.TimeoutSeconds)
	}
}
