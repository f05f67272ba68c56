package convert

// MappingsFile is the cross-framework mapping input format: groups of
// control pairs keyed by source and target framework.
type MappingsFile struct {
	Mappings []MappingGroup `json:"mappings"`
}

// MappingGroup holds all control pairs between one framework pair.
type MappingGroup struct {
	Source   string        `json:"source"`
	Target   string        `json:"target"`
	Mappings []ControlPair `json:"mappings"`
}

// ControlPair relates one source control to one target control.
type ControlPair struct {
	SourceControlID string `json:"source_control_id"`
	TargetControlID string `json:"target_control_id"`
}
