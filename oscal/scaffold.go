package oscal

import (
	"fmt"
	"strings"
)

// SSPScaffold renders the structural reference for the SSP artifact.
// It is embedded in conversion prompts so the model knows what to fill
// in without the prompt hardcoding the full schema.
func SSPScaffold(sensitivityLevel string, controlCountHint int) string {
	level := strings.ToLower(sensitivityLevel)
	hint := ""
	if controlCountHint > 0 {
		hint = fmt.Sprintf(" Hint: expect ~%d controls.", controlCountHint)
	}

	var b strings.Builder
	b.WriteString("Target structure: system-security-plan (oscal-version " + Version + ").\n\n")
	b.WriteString("Required sections:\n")
	b.WriteString("- metadata: title, last-modified (ISO 8601), version, oscal-version ('" + Version + "'); plus roles and parties arrays.\n")
	b.WriteString("- import-profile: href of the baseline profile this SSP is based on.\n")
	b.WriteString("- system-characteristics: system-ids, system-name, description, " +
		"security-sensitivity-level ('" + level + "'), system-information " +
		"(information-types with NIST SP 800-60 categorizations and C/I/A impacts), " +
		"security-impact-level (security-objective-confidentiality/-integrity/-availability), " +
		"status.state (operational, under-development, under-major-modification, disposition, other), " +
		"authorization-boundary.\n")
	b.WriteString("- system-implementation: components (required; each needs uuid, type, title, description, status). " +
		"Use type 'this-system' for the primary system and 'leveraged-system' for inherited services.\n")
	b.WriteString("- control-implementation: description plus implemented-requirements." + hint + "\n\n")
	b.WriteString("Each implemented-requirement carries: uuid; control-id (lowercase, e.g. 'ac-2'); " +
		"statements, each with statement-id, uuid, and by-components entries " +
		"(component-uuid, description, implementation-status.state one of " +
		"implemented, partial, planned, alternative, not-applicable).\n\n")
	b.WriteString("Notes:\n")
	b.WriteString("- All UUIDs must be valid UUID v4 or v5 format.\n")
	b.WriteString("- Control IDs must be lowercase (e.g., 'ac-2', not 'AC-2').\n")
	b.WriteString("- The by-components pattern supports shared responsibility: use separate entries " +
		"for service provider vs. inherited controls.\n")
	return b.String()
}

// MappingScaffold renders the structural reference for the
// mapping-collection artifact.
func MappingScaffold(sourceFramework, targetFramework string, mappingCountHint int) string {
	hint := ""
	if mappingCountHint > 0 {
		hint = fmt.Sprintf(" Hint: expect ~%d control pairs.", mappingCountHint)
	}

	var b strings.Builder
	b.WriteString("Target structure: mapping-collection (oscal-version " + Version + ").\n\n")
	b.WriteString("Required sections:\n")
	b.WriteString("- metadata: title, last-modified (ISO 8601), version, oscal-version ('" + Version + "').\n")
	b.WriteString(fmt.Sprintf("- mappings: each entry carries uuid, source-resource (e.g. '%s'), "+
		"target-resource (e.g. '%s'), and a maps array.%s\n\n", sourceFramework, targetFramework, hint))
	b.WriteString("Each map entry carries: uuid; source.type and source.id-ref (lowercase control ID); " +
		"target.type and target.id-ref; relationship.type.\n\n")
	b.WriteString("Relationship types:\n")
	b.WriteString("- equivalent-to: controls address the same requirement, functionally interchangeable.\n")
	b.WriteString("- subset-of: source is a narrower requirement contained within target.\n")
	b.WriteString("- superset-of: source is a broader requirement that encompasses target.\n")
	b.WriteString("- intersects-with: controls partially overlap, neither fully contains the other.\n\n")
	b.WriteString("Notes:\n")
	b.WriteString("- All UUIDs must be valid UUID v4 or v5 format.\n")
	b.WriteString("- Control IDs must be lowercase (e.g., 'ac-2', not 'AC-2').\n")
	b.WriteString("- Default to 'equivalent-to' for direct control mappings unless context suggests otherwise.\n")
	return b.String()
}
