package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model.Temperature != 0.2 {
		t.Errorf("expected default temperature 0.2, got %f", cfg.Model.Temperature)
	}
	if cfg.Budget.MaxChars != 200_000 {
		t.Errorf("expected default budget 200000, got %d", cfg.Budget.MaxChars)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected default debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Fetch.AllowPrivateHosts {
		t.Error("expected private hosts to be blocked by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "temperature too low",
			modify:  func(c *Config) { c.Model.Temperature = -0.1 },
			wantErr: true,
		},
		{
			name:    "temperature too high",
			modify:  func(c *Config) { c.Model.Temperature = 1.1 },
			wantErr: true,
		},
		{
			name:    "zero budget",
			modify:  func(c *Config) { c.Budget.MaxChars = 0 },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
		{
			name:    "zero fetch timeout",
			modify:  func(c *Config) { c.Fetch.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative redirect cap",
			modify:  func(c *Config) { c.Fetch.MaxRedirects = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temp file with config
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
model:
  registry_path: "/etc/oscalgen/models.json"
  temperature: 0.5
  timeout: 10m
budget:
  max_chars: 50000
watch:
  inbox: "/var/oscalgen/inbox"
  output_dir: "/var/oscalgen/out"
fetch:
  max_redirects: 3
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Model.RegistryPath != "/etc/oscalgen/models.json" {
		t.Errorf("unexpected registry path %s", cfg.Model.RegistryPath)
	}
	if cfg.Model.Temperature != 0.5 {
		t.Errorf("expected temperature 0.5, got %f", cfg.Model.Temperature)
	}
	if cfg.Model.Timeout != 10*time.Minute {
		t.Errorf("expected timeout 10m, got %v", cfg.Model.Timeout)
	}
	if cfg.Budget.MaxChars != 50000 {
		t.Errorf("expected budget 50000, got %d", cfg.Budget.MaxChars)
	}
	if cfg.Watch.Inbox != "/var/oscalgen/inbox" {
		t.Errorf("unexpected inbox %s", cfg.Watch.Inbox)
	}
	if cfg.Fetch.MaxRedirects != 3 {
		t.Errorf("expected 3 redirects, got %d", cfg.Fetch.MaxRedirects)
	}
	// Unset fields keep their defaults
	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("expected fetch timeout to remain default, got %v", cfg.Fetch.Timeout)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Model: ModelConfig{
			RegistryPath: "/override/models.json",
		},
		Budget: BudgetConfig{
			MaxChars: 1000,
		},
	}

	base.Merge(override)

	if base.Model.RegistryPath != "/override/models.json" {
		t.Errorf("expected override registry path, got %s", base.Model.RegistryPath)
	}
	if base.Budget.MaxChars != 1000 {
		t.Errorf("expected budget 1000, got %d", base.Budget.MaxChars)
	}
	// Temperature should remain from base since override didn't set it
	if base.Model.Temperature != 0.2 {
		t.Errorf("expected temperature to remain default, got %f", base.Model.Temperature)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Watch.Inbox = "/saved/inbox"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Watch.Inbox != "/saved/inbox" {
		t.Errorf("expected inbox /saved/inbox, got %s", loaded.Watch.Inbox)
	}
}
