package oscal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNoStructuredOutput marks a conversion that yielded no structured
// payload at all, as opposed to one that yielded an invalid payload.
var ErrNoStructuredOutput = errors.New("no structured output produced")

// violations accumulates schema problems so a failed validation reports
// everything wrong at once rather than one field per attempt.
type violations []string

func (v *violations) addf(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

func (v violations) err(artifact string) error {
	if len(v) == 0 {
		return nil
	}
	return fmt.Errorf("%s failed schema validation: %s", artifact, strings.Join(v, "; "))
}

// ValidateSSP parses and validates a raw SSP payload against the output
// contract. Any missing required field rejects the whole payload; no
// partial artifact is ever returned.
func ValidateSSP(raw []byte) (*Envelope, error) {
	if len(raw) == 0 {
		return nil, ErrNoStructuredOutput
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse SSP payload: %w", err)
	}

	var v violations
	ssp := env.SystemSecurityPlan
	if ssp == nil {
		v.addf("system-security-plan is required")
		return nil, v.err("SSP")
	}

	checkUUID(&v, "system-security-plan.uuid", ssp.UUID)
	validateMetadata(&v, ssp.Metadata)

	if ssp.ImportProfile == nil || ssp.ImportProfile.Href == "" {
		v.addf("import-profile.href is required")
	}

	validateCharacteristics(&v, ssp.SystemCharacteristics)
	validateImplementation(&v, ssp.SystemImplementation)
	validateControlImplementation(&v, ssp.ControlImplementation)

	if err := v.err("SSP"); err != nil {
		return nil, err
	}
	return &env, nil
}

// ValidateMapping parses and validates a raw mapping-collection payload.
func ValidateMapping(raw []byte) (*MappingEnvelope, error) {
	if len(raw) == 0 {
		return nil, ErrNoStructuredOutput
	}

	var env MappingEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("parse mapping payload: %w", err)
	}

	var v violations
	mc := env.MappingCollection
	if mc == nil {
		v.addf("mapping-collection is required")
		return nil, v.err("mapping-collection")
	}

	checkUUID(&v, "mapping-collection.uuid", mc.UUID)
	validateMetadata(&v, mc.Metadata)

	if len(mc.Mappings) == 0 {
		v.addf("mappings must not be empty")
	}
	for i, m := range mc.Mappings {
		checkUUID(&v, fmt.Sprintf("mappings[%d].uuid", i), m.UUID)
		if m.SourceResource == nil {
			v.addf("mappings[%d].source-resource is required", i)
		}
		if m.TargetResource == nil {
			v.addf("mappings[%d].target-resource is required", i)
		}
		if len(m.Maps) == 0 {
			v.addf("mappings[%d].maps must not be empty", i)
		}
		for j, entry := range m.Maps {
			prefix := fmt.Sprintf("mappings[%d].maps[%d]", i, j)
			checkUUID(&v, prefix+".uuid", entry.UUID)
			validateEndpoint(&v, prefix+".source", entry.Source)
			validateEndpoint(&v, prefix+".target", entry.Target)
			if entry.Relationship == nil {
				v.addf("%s.relationship is required", prefix)
			} else if !ValidRelationship(entry.Relationship.Type) {
				v.addf("%s.relationship.type %q is not a permitted value", prefix, entry.Relationship.Type)
			}
		}
	}

	if err := v.err("mapping-collection"); err != nil {
		return nil, err
	}
	return &env, nil
}

func validateMetadata(v *violations, m *Metadata) {
	if m == nil {
		v.addf("metadata is required")
		return
	}
	if m.Title == "" {
		v.addf("metadata.title is required")
	}
	if m.LastModified == "" {
		v.addf("metadata.last-modified is required")
	}
	if m.Version == "" {
		v.addf("metadata.version is required")
	}
	if m.OscalVersion == "" {
		v.addf("metadata.oscal-version is required")
	}
}

func validateCharacteristics(v *violations, sc *SystemCharacteristics) {
	if sc == nil {
		v.addf("system-characteristics is required")
		return
	}
	if len(sc.SystemIDs) == 0 {
		v.addf("system-characteristics.system-ids must not be empty")
	}
	if sc.SystemName == "" {
		v.addf("system-characteristics.system-name is required")
	}
	if sc.Description == "" {
		v.addf("system-characteristics.description is required")
	}
	if sc.SecuritySensitivityLevel == "" {
		v.addf("system-characteristics.security-sensitivity-level is required")
	}
	if sc.SystemInformation == nil {
		v.addf("system-characteristics.system-information is required")
	}
	if sc.SecurityImpactLevel == nil {
		v.addf("system-characteristics.security-impact-level is required")
	}
	if sc.Status == nil || sc.Status.State == "" {
		v.addf("system-characteristics.status.state is required")
	}
	if sc.AuthorizationBoundary == nil {
		v.addf("system-characteristics.authorization-boundary is required")
	}
}

func validateImplementation(v *violations, si *SystemImplementation) {
	if si == nil {
		v.addf("system-implementation is required")
		return
	}
	if len(si.Components) == 0 {
		v.addf("system-implementation.components must not be empty")
	}
	for i, c := range si.Components {
		prefix := fmt.Sprintf("system-implementation.components[%d]", i)
		checkUUID(v, prefix+".uuid", c.UUID)
		if c.Type == "" {
			v.addf("%s.type is required", prefix)
		}
		if c.Title == "" {
			v.addf("%s.title is required", prefix)
		}
		if c.Description == "" {
			v.addf("%s.description is required", prefix)
		}
		if c.Status == nil || c.Status.State == "" {
			v.addf("%s.status.state is required", prefix)
		}
	}
}

func validateControlImplementation(v *violations, ci *ControlImplementation) {
	if ci == nil {
		v.addf("control-implementation is required")
		return
	}
	if ci.Description == "" {
		v.addf("control-implementation.description is required")
	}
	if ci.ImplementedRequirements == nil {
		v.addf("control-implementation.implemented-requirements is required")
	}
	for i, req := range ci.ImplementedRequirements {
		prefix := fmt.Sprintf("control-implementation.implemented-requirements[%d]", i)
		checkUUID(v, prefix+".uuid", req.UUID)
		if req.ControlID == "" {
			v.addf("%s.control-id is required", prefix)
		} else if req.ControlID != strings.ToLower(req.ControlID) {
			v.addf("%s.control-id %q must be lowercase", prefix, req.ControlID)
		}
	}
}

func validateEndpoint(v *violations, prefix string, ep *MapEndpoint) {
	if ep == nil {
		v.addf("%s is required", prefix)
		return
	}
	if ep.Type == "" {
		v.addf("%s.type is required", prefix)
	}
	if ep.IDRef == "" {
		v.addf("%s.id-ref is required", prefix)
	}
}

// checkUUID requires a present, well-formed UUID.
func checkUUID(v *violations, field, value string) {
	if value == "" {
		v.addf("%s is required", field)
		return
	}
	if _, err := uuid.Parse(value); err != nil {
		v.addf("%s %q is not a valid UUID", field, value)
	}
}
