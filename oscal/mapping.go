package oscal

// MappingEnvelope is the top-level mapping-collection artifact document.
type MappingEnvelope struct {
	MappingCollection *MappingCollection `json:"mapping-collection"`
}

// MappingCollection is the cross-framework control mapping body,
// targeting the Control Mapping model introduced in OSCAL 1.2.0.
type MappingCollection struct {
	UUID     string    `json:"uuid"`
	Metadata *Metadata `json:"metadata"`
	Mappings []Mapping `json:"mappings"`
}

// Mapping groups the maps between one source and one target framework.
type Mapping struct {
	UUID           string    `json:"uuid"`
	SourceResource *Resource `json:"source-resource"`
	TargetResource *Resource `json:"target-resource"`
	Maps           []Map     `json:"maps"`
}

// Resource identifies a framework catalog by type and href or title.
type Resource struct {
	Type  string `json:"type,omitempty"`
	Href  string `json:"href,omitempty"`
	Title string `json:"title,omitempty"`
}

// Map is one control-to-control mapping.
type Map struct {
	UUID         string        `json:"uuid"`
	Source       *MapEndpoint  `json:"source"`
	Target       *MapEndpoint  `json:"target"`
	Relationship *Relationship `json:"relationship"`
}

// MapEndpoint references one control on either side of a map.
type MapEndpoint struct {
	Type  string `json:"type"`
	IDRef string `json:"id-ref"`
}

// Relationship describes how the source control relates to the target.
type Relationship struct {
	Type    string `json:"type"`
	Remarks string `json:"remarks,omitempty"`
}

// Relationship types permitted by the mapping model.
const (
	RelEquivalentTo   = "equivalent-to"
	RelSubsetOf       = "subset-of"
	RelSupersetOf     = "superset-of"
	RelIntersectsWith = "intersects-with"
)

// ValidRelationship reports whether t is a permitted relationship type.
func ValidRelationship(t string) bool {
	switch t {
	case RelEquivalentTo, RelSubsetOf, RelSupersetOf, RelIntersectsWith:
		return true
	default:
		return false
	}
}
