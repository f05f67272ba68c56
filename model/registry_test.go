package model

import (
	"encoding/json"
	"testing"
)

func TestNewDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	caps := r.ListCapabilities()
	if len(caps) != 4 {
		t.Errorf("expected 4 capabilities, got %d", len(caps))
	}

	endpoints := r.ListEndpoints()
	if len(endpoints) < 3 {
		t.Errorf("expected at least 3 endpoints, got %d", len(endpoints))
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		capability Capability
		expected   string
	}{
		{CapabilityConversion, "claude-opus"},
		{CapabilityMapping, "claude-sonnet"},
		{CapabilityAssessment, "claude-opus"},
		{CapabilityFast, "claude-haiku"},
		{Capability("unknown"), "qwen"}, // Falls back to default
	}

	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			got := r.Resolve(tt.capability)
			if got != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.capability, got, tt.expected)
			}
		})
	}
}

func TestRegistryGetFallbackChain(t *testing.T) {
	r := NewDefaultRegistry()

	chain := r.GetFallbackChain(CapabilityConversion)

	if len(chain) < 3 {
		t.Errorf("expected at least 3 models in chain, got %d", len(chain))
	}

	if chain[0] != "claude-opus" {
		t.Errorf("first in chain should be claude-opus, got %q", chain[0])
	}

	hasQwen := false
	for _, m := range chain {
		if m == "qwen" {
			hasQwen = true
			break
		}
	}
	if !hasQwen {
		t.Error("expected qwen in fallback chain")
	}
}

func TestRegistryForArtifact(t *testing.T) {
	r := NewDefaultRegistry()

	if got := r.ForArtifact("oscal-ssp"); got != "claude-opus" {
		t.Errorf("ForArtifact(oscal-ssp) = %q, want claude-opus", got)
	}
	if got := r.ForArtifact("oscal-mapping"); got != "claude-sonnet" {
		t.Errorf("ForArtifact(oscal-mapping) = %q, want claude-sonnet", got)
	}

	chain := r.GetFallbackChainForArtifact("oscal-ssp")
	if len(chain) == 0 || chain[0] != "claude-opus" {
		t.Errorf("unexpected chain for oscal-ssp: %v", chain)
	}
}

func TestRegistryGetEndpoint(t *testing.T) {
	r := NewDefaultRegistry()

	ep := r.GetEndpoint("claude-sonnet")
	if ep == nil {
		t.Fatal("expected endpoint for claude-sonnet")
	}
	if ep.Provider != "anthropic" {
		t.Errorf("expected anthropic provider, got %q", ep.Provider)
	}

	if r.GetEndpoint("nonexistent") != nil {
		t.Error("expected nil for unknown endpoint")
	}
}

func TestRegistrySetters(t *testing.T) {
	r := NewRegistry(nil, nil)

	r.SetCapability(CapabilityFast, &CapabilityConfig{
		Preferred: []string{"tiny"},
	})
	r.SetEndpoint("tiny", &EndpointConfig{
		Provider: "ollama",
		Model:    "tiny-model",
	})
	r.SetDefault("tiny")

	if got := r.Resolve(CapabilityFast); got != "tiny" {
		t.Errorf("Resolve(fast) = %q, want tiny", got)
	}
	if got := r.Resolve(CapabilityMapping); got != "tiny" {
		t.Errorf("Resolve(mapping) should fall back to default, got %q", got)
	}
}

func TestRegistryJSONRoundTrip(t *testing.T) {
	r := NewDefaultRegistry()

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Registry
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := restored.Resolve(CapabilityConversion); got != "claude-opus" {
		t.Errorf("restored Resolve(conversion) = %q, want claude-opus", got)
	}
	if len(restored.ListEndpoints()) != len(r.ListEndpoints()) {
		t.Error("endpoint count changed across round trip")
	}
}
