// Package config provides configuration loading and management for oscalgen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete oscalgen configuration
type Config struct {
	Model  ModelConfig  `yaml:"model"`
	Budget BudgetConfig `yaml:"budget"`
	Watch  WatchConfig  `yaml:"watch"`
	Fetch  FetchConfig  `yaml:"fetch"`
}

// ModelConfig configures the LLM model settings
type ModelConfig struct {
	// RegistryPath is a JSON file with the model registry (empty = built-in defaults)
	RegistryPath string `yaml:"registry_path"`
	// Temperature controls randomness (0.0-1.0, default: 0.2)
	Temperature float64 `yaml:"temperature"`
	// Timeout is the maximum time to wait for model responses
	Timeout time.Duration `yaml:"timeout"`
}

// BudgetConfig configures the prompt content budget
type BudgetConfig struct {
	// MaxChars caps document content sent to the model in one prompt
	MaxChars int `yaml:"max_chars"`
}

// WatchConfig configures the conversion inbox watcher
type WatchConfig struct {
	// Inbox is the directory watched for new compliance documents
	Inbox string `yaml:"inbox"`
	// OutputDir is where converted OSCAL artifacts are written
	OutputDir string `yaml:"output_dir"`
	// Debounce is how long to wait after the last write before converting
	Debounce time.Duration `yaml:"debounce"`
	// MetricsAddr is the listen address for the Prometheus endpoint (empty = disabled)
	MetricsAddr string `yaml:"metrics_addr"`
}

// FetchConfig configures URL document fetching
type FetchConfig struct {
	// Timeout is the per-request fetch timeout
	Timeout time.Duration `yaml:"timeout"`
	// MaxSize caps the fetched body size in bytes
	MaxSize int64 `yaml:"max_size"`
	// MaxRedirects caps redirect hops
	MaxRedirects int `yaml:"max_redirects"`
	// AllowPrivateHosts permits fetching from private/loopback addresses
	AllowPrivateHosts bool `yaml:"allow_private_hosts"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			RegistryPath: "",
			Temperature:  0.2,
			Timeout:      5 * time.Minute,
		},
		Budget: BudgetConfig{
			MaxChars: 200_000,
		},
		Watch: WatchConfig{
			Inbox:       "inbox",
			OutputDir:   ".",
			Debounce:    2 * time.Second,
			MetricsAddr: "",
		},
		Fetch: FetchConfig{
			Timeout:           30 * time.Second,
			MaxSize:           10 * 1024 * 1024,
			MaxRedirects:      5,
			AllowPrivateHosts: false,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		return fmt.Errorf("model.temperature must be between 0 and 1")
	}
	if c.Model.Timeout <= 0 {
		return fmt.Errorf("model.timeout must be positive")
	}
	if c.Budget.MaxChars <= 0 {
		return fmt.Errorf("budget.max_chars must be positive")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.MaxSize <= 0 {
		return fmt.Errorf("fetch.max_size must be positive")
	}
	if c.Fetch.MaxRedirects < 0 {
		return fmt.Errorf("fetch.max_redirects must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Model
	if other.Model.RegistryPath != "" {
		c.Model.RegistryPath = other.Model.RegistryPath
	}
	if other.Model.Temperature != 0 {
		c.Model.Temperature = other.Model.Temperature
	}
	if other.Model.Timeout != 0 {
		c.Model.Timeout = other.Model.Timeout
	}

	// Budget
	if other.Budget.MaxChars != 0 {
		c.Budget.MaxChars = other.Budget.MaxChars
	}

	// Watch
	if other.Watch.Inbox != "" {
		c.Watch.Inbox = other.Watch.Inbox
	}
	if other.Watch.OutputDir != "" {
		c.Watch.OutputDir = other.Watch.OutputDir
	}
	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if other.Watch.MetricsAddr != "" {
		c.Watch.MetricsAddr = other.Watch.MetricsAddr
	}

	// Fetch
	if other.Fetch.Timeout != 0 {
		c.Fetch.Timeout = other.Fetch.Timeout
	}
	if other.Fetch.MaxSize != 0 {
		c.Fetch.MaxSize = other.Fetch.MaxSize
	}
	if other.Fetch.MaxRedirects != 0 {
		c.Fetch.MaxRedirects = other.Fetch.MaxRedirects
	}
	if other.Fetch.AllowPrivateHosts {
		c.Fetch.AllowPrivateHosts = true
	}
}
