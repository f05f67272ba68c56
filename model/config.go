package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// RegistryConfig is the JSON shape of the model registry, as stored under
// the "model_registry" key of a registry file.
type RegistryConfig struct {
	Capabilities map[string]*CapabilityConfig `json:"capabilities"`
	Endpoints    map[string]*EndpointConfig   `json:"endpoints"`
	Defaults     *DefaultsConfig              `json:"defaults,omitempty"`
}

// LoadFromFile loads a registry from a JSON file, either a full config
// carrying a "model_registry" key or a bare registry config.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry file: %w", err)
	}

	return LoadFromJSON(data)
}

// LoadFromJSON loads a registry from JSON data. Both the wrapped and the
// bare form are accepted so registry files can be embedded in a larger
// config or stand alone.
func LoadFromJSON(data []byte) (*Registry, error) {
	var fullConfig struct {
		ModelRegistry *RegistryConfig `json:"model_registry"`
	}
	if err := json.Unmarshal(data, &fullConfig); err == nil && fullConfig.ModelRegistry != nil {
		return registryFromConfig(fullConfig.ModelRegistry), nil
	}

	var regConfig RegistryConfig
	if err := json.Unmarshal(data, &regConfig); err != nil {
		return nil, fmt.Errorf("parse registry config: %w", err)
	}

	return registryFromConfig(&regConfig), nil
}

// capabilityKey maps a config key to a Capability, passing unknown names
// through so site-specific capabilities still resolve.
func capabilityKey(k string) Capability {
	if c := ParseCapability(k); c != "" {
		return c
	}
	return Capability(k)
}

func registryFromConfig(cfg *RegistryConfig) *Registry {
	caps := make(map[Capability]*CapabilityConfig, len(cfg.Capabilities))
	for k, v := range cfg.Capabilities {
		caps[capabilityKey(k)] = v
	}

	defaults := cfg.Defaults
	if defaults == nil {
		defaults = &DefaultsConfig{Model: "default"}
	}

	return &Registry{
		capabilities: caps,
		endpoints:    cfg.Endpoints,
		defaults:     defaults,
	}
}

// ToConfig converts a Registry to its serializable form.
func (r *Registry) ToConfig() *RegistryConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps := make(map[string]*CapabilityConfig, len(r.capabilities))
	for k, v := range r.capabilities {
		caps[string(k)] = v
	}

	return &RegistryConfig{
		Capabilities: caps,
		Endpoints:    r.endpoints,
		Defaults:     r.defaults,
	}
}

// MergeFromConfig overlays configuration onto an existing registry.
// Entries in cfg win over existing ones.
func (r *Registry) MergeFromConfig(cfg *RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, v := range cfg.Capabilities {
		r.capabilities[capabilityKey(k)] = v
	}

	for k, v := range cfg.Endpoints {
		r.endpoints[k] = v
	}

	if cfg.Defaults != nil {
		r.defaults = cfg.Defaults
	}
}
