// Package model provides capability-based model selection for pipeline tasks.
// Instead of hardcoding model names, callers specify capabilities (conversion,
// mapping, assessment) and the registry resolves them to available models with
// fallback chains.
package model

// Capability represents a semantic capability for model selection.
// Instead of specifying "claude-sonnet", callers specify "conversion" or "mapping".
type Capability string

const (
	// CapabilityConversion is for long-document structured extraction,
	// turning compliance narratives into OSCAL artifacts.
	CapabilityConversion Capability = "conversion"

	// CapabilityMapping is for cross-framework control mapping.
	CapabilityMapping Capability = "mapping"

	// CapabilityAssessment is for gap analysis and risk reasoning over evidence.
	CapabilityAssessment Capability = "assessment"

	// CapabilityFast is for quick responses, simple tasks.
	CapabilityFast Capability = "fast"
)

// ArtifactCapabilities maps output artifact types to their default capability.
// Used when no explicit capability or model is specified.
var ArtifactCapabilities = map[string]Capability{
	"oscal-ssp":     CapabilityConversion,
	"oscal-mapping": CapabilityMapping,
	"assessment":    CapabilityAssessment,
}

// CapabilityForArtifact returns the default capability for an artifact type.
// Returns CapabilityConversion as fallback for unknown artifacts.
func CapabilityForArtifact(artifact string) Capability {
	if cap, ok := ArtifactCapabilities[artifact]; ok {
		return cap
	}
	return CapabilityConversion
}

// IsValid checks if a capability string is a known capability.
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityConversion, CapabilityMapping, CapabilityAssessment, CapabilityFast:
		return true
	}
	return false
}

// String returns the string representation of the capability.
func (c Capability) String() string {
	return string(c)
}

// ParseCapability converts a string to a Capability, returning empty for invalid values.
func ParseCapability(s string) Capability {
	cap := Capability(s)
	if cap.IsValid() {
		return cap
	}
	return ""
}
