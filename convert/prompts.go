package convert

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/c360studio/oscalgen/extract"
	"github.com/c360studio/oscalgen/oscal"
)

// defaultSensitivityLevel seeds the scaffold when the source document has
// not declared one; the oracle overrides it from document content.
const defaultSensitivityLevel = "moderate"

// StructuredPrompt builds the conversion prompt from pre-extracted control
// records. Params and parts are emitted in sorted order so the same input
// always yields the same prompt.
func StructuredPrompt(controls []extract.ControlRecord, inputPath string) string {
	header := []string{
		"You are an OSCAL SSP conversion specialist. Convert the following pre-extracted control data",
		"into OSCAL SSP JSON format.",
		"",
		"## Instructions",
		"",
		"1. Follow the target OSCAL SSP structure in the Target Structure section below.",
		"2. Include `import-profile` with the baseline profile URI, `system-implementation` with at least",
		"   one component (type 'this-system'), and all required `system-characteristics` fields.",
		"3. Map each control to `implemented-requirements` with `by-components` entries.",
		"4. The metadata below (status, origination, roles) was extracted programmatically from",
		"   document table structure and is reliable. Focus on mapping narratives to OSCAL `statements`.",
		"5. Generate valid UUID v4 (random) or v5 (name-based) values for all uuid fields.",
		"   Prefer v5 for document and component UUIDs (deterministic), v4 for instance-specific UUIDs.",
		"6. Use lowercase control IDs (e.g., 'ac-2', not 'AC-2').",
		"7. Set oscal-version to '" + oscal.Version + "'.",
		"",
		"## Target Structure",
		"",
		oscal.SSPScaffold(defaultSensitivityLevel, len(controls)),
		"",
		"## Pre-extracted Controls (from document table structure)",
		"",
		fmt.Sprintf("Source: %s", filepath.Base(inputPath)),
		fmt.Sprintf("Total controls: %d", len(controls)),
		"",
	}

	blocks := make([]string, 0, len(controls))
	for _, ctrl := range controls {
		lines := []string{"### " + ctrl.ControlID}
		if ctrl.Status != "" {
			lines = append(lines, "- Status: "+ctrl.Status)
		}
		if ctrl.Origination != "" {
			lines = append(lines, "- Origination: "+ctrl.Origination)
		}
		if ctrl.Roles != "" {
			lines = append(lines, "- Roles: "+ctrl.Roles)
		}

		for _, key := range sortedKeys(ctrl.Params) {
			if val := ctrl.Params[key]; val != "" {
				lines = append(lines, fmt.Sprintf("- %s: %s", key, val))
			}
		}

		if len(ctrl.Parts) > 0 {
			for _, letter := range sortedKeys(ctrl.Parts) {
				lines = append(lines, fmt.Sprintf("- Part (%s): %s", letter, ctrl.Parts[letter]))
			}
		} else if ctrl.RawNarrative != "" {
			lines = append(lines, "- Narrative: "+ctrl.RawNarrative)
		}

		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	sections := append(header, blocks...)
	sections = append(sections,
		"",
		"## Output",
		"",
		"Return only valid OSCAL SSP JSON matching the target structure.",
	)
	return strings.Join(sections, "\n")
}

// ConversionPrompt builds the plain-text conversion prompt for markdown
// input or table extraction fallback.
func ConversionPrompt(sspContent, inputPath string) string {
	return strings.Join([]string{
		"You are an OSCAL SSP conversion specialist. Convert the following System Security Plan",
		"document into OSCAL SSP JSON format.",
		"",
		"## Instructions",
		"",
		"1. Follow the target OSCAL SSP structure in the Target Structure section below.",
		"2. Include `import-profile` with the baseline profile URI, `system-implementation` with at least",
		"   one component (type 'this-system'), and all required `system-characteristics` fields",
		"   (system-ids, description, status, authorization-boundary, etc.).",
		"3. Map each control narrative to `implemented-requirements` with `by-components` entries.",
		"4. Preserve:",
		"   - Implementation status (implemented, partial, planned, alternative, not-applicable)",
		"   - Control origination (service provider vs. inherited vs. shared)",
		"   - Authorization boundary details",
		"   - Security sensitivity level and FIPS 199 impact levels",
		"5. Generate valid UUID v4 (random) or v5 (name-based) values for all uuid fields.",
		"   Prefer v5 for document and component UUIDs (deterministic), v4 for instance-specific UUIDs.",
		"6. Use lowercase control IDs (e.g., 'ac-2', not 'AC-2').",
		"7. Set oscal-version to '" + oscal.Version + "'.",
		"8. If the document appears truncated, convert all controls present. Do not halt.",
		"",
		"## Target Structure",
		"",
		oscal.SSPScaffold(defaultSensitivityLevel, 0),
		"",
		"## Source SSP Document",
		"",
		fmt.Sprintf("File: %s", filepath.Base(inputPath)),
		"",
		"```",
		sspContent,
		"```",
		"",
		"## Output",
		"",
		"Return only valid OSCAL SSP JSON matching the target structure.",
	}, "\n")
}

// MappingPrompt builds the mapping-collection conversion prompt from a
// parsed framework-mappings file.
func MappingPrompt(data *MappingsFile, inputPath string) string {
	totalPairs := 0
	for _, group := range data.Mappings {
		totalPairs += len(group.Mappings)
	}

	source, target := "source framework", "target framework"
	if len(data.Mappings) > 0 {
		source = data.Mappings[0].Source
		target = data.Mappings[0].Target
	}

	header := []string{
		"You are an OSCAL conversion specialist. Convert the following cross-framework control mapping data",
		"into OSCAL mapping-collection JSON format (OSCAL " + oscal.Version + ").",
		"",
		"## Instructions",
		"",
		"1. Follow the OSCAL mapping-collection structure in the Target Structure section below.",
		"2. Each mapping group below becomes one entry in the `mappings` array, with `source-resource`",
		"   and `target-resource` identifying the frameworks.",
		"3. Each control pair becomes a `maps[]` entry with `source`, `target`, and `relationship`.",
		"4. Infer the relationship type from control context:",
		"   - `equivalent-to`: controls address the same requirement",
		"   - `subset-of`: source is a narrower requirement than target",
		"   - `superset-of`: source is a broader requirement than target",
		"   - `intersects-with`: controls partially overlap",
		"   When unsure, default to `equivalent-to` for direct mappings.",
		"5. Generate valid UUID v4 (random) or v5 (name-based) values for all uuid fields.",
		"   Prefer v5 for document and component UUIDs (deterministic), v4 for instance-specific UUIDs.",
		"6. Use lowercase control IDs (e.g., 'ac-2', not 'AC-2').",
		"7. Set oscal-version to '" + oscal.Version + "'.",
		"",
		"## Target Structure",
		"",
		oscal.MappingScaffold(source, target, totalPairs),
		"",
		"## Source Mapping Data",
		"",
		fmt.Sprintf("File: %s", filepath.Base(inputPath)),
		fmt.Sprintf("Total mapping groups: %d", len(data.Mappings)),
		fmt.Sprintf("Total control pairs: %d", totalPairs),
		"",
	}

	blocks := make([]string, 0, len(data.Mappings))
	for _, group := range data.Mappings {
		lines := []string{fmt.Sprintf("### %s to %s", group.Source, group.Target)}
		for _, pair := range group.Mappings {
			lines = append(lines, fmt.Sprintf("- %s -> %s", pair.SourceControlID, pair.TargetControlID))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	sections := append(header, blocks...)
	sections = append(sections,
		"",
		"## Output",
		"",
		"Return only valid OSCAL mapping-collection JSON matching the target structure.",
	)
	return strings.Join(sections, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
