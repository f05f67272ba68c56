package assessment

import (
	"fmt"
	"strings"

	"github.com/c360studio/oscalgen/evidence"
)

// BuildPrompt assembles the orchestrator prompt with four instruction
// sections: workflow, verification (completeness checks), decision logic
// (depth of analysis per framework), and evidence.
func BuildPrompt(inp Input, summaries []evidence.Summary) string {
	evidenceBlock := "No evidence files provided."
	if len(summaries) > 0 {
		var blocks []string
		for _, s := range summaries {
			excerpt := s.Excerpt
			if excerpt == "" {
				excerpt = "(empty or unreadable)"
			}
			blocks = append(blocks, fmt.Sprintf("- %s\n%s\n", s.Path, excerpt))
		}
		evidenceBlock = strings.Join(blocks, "\n")
	}

	var evidencePaths []string
	for _, s := range summaries {
		evidencePaths = append(evidencePaths, "  - "+s.Path)
	}

	return strings.Join([]string{
		"You are a multi-framework GRC assessment orchestrator.",
		"",
		"Framework: " + inp.Framework,
		"Baseline/Level: " + inp.Baseline,
		"Scope: " + inp.Scope,
		"",
		"## Workflow",
		"",
		"1. **Understand scope**: review the framework, baseline, and evidence to determine assessment complexity.",
		"2. **Assess each control**: for every control in the baseline, determine implementation_status and control_origination from the evidence excerpts.",
		"3. **Identify gaps**: compare evidence against control requirements; record a gap_description for each missing or partial implementation.",
		"4. **Synthesize**: combine per-control findings into the final JSON assessment with summary metrics.",
		"",
		"## Verification",
		"",
		"Before producing the final assessment, verify:",
		"- **Control count**: the number of findings matches the expected baseline control count.",
		"- **Evidence paths**: every `evidence_reviewed` entry references a path from the evidence list below.",
		"- **POA&M completeness**: every finding with `poam_required: true` has a `poam_entry` with `weakness_description`, `scheduled_completion_date`, `milestones`, `source`, and `status`.",
		"- **Risk-timeline alignment**: critical findings have a remediation window of at most 30 days, high at most 90, moderate at most 180.",
		"",
		"## Decision logic",
		"",
		"- **CMMC assessments**: determine the achievable level and the count of gaps blocking the next level (`cmmc_level_achievable`, `cmmc_gaps_to_next_level`).",
		"- **AI governance frameworks**: classify the AI system risk tier and map findings to AI RMF functions Govern/Map/Measure/Manage (`ai_risk_tier`, `ai_rmf_function`).",
		"- **Cross-framework scopes**: populate `related_controls` where controls map across frameworks.",
		"- **Simple assessments** (few controls, single evidence file): straightforward gap identification is sufficient.",
		"",
		"## Evidence",
		"",
		"Evidence file paths:",
		strings.Join(evidencePaths, "\n"),
		"",
		"Evidence excerpts:",
		evidenceBlock,
		"",
		"## Output",
		"",
		"Return only valid JSON with these top-level fields:",
		"- assessment_metadata: {framework, framework_version, baseline_or_level, assessment_date, scope}",
		"- findings: one entry per control with control_id, status, implementation_status, gap_description, risk_level, poam_required, poam_entry",
		"- summary, controls_assessed, controls_satisfied, controls_with_gaps, overall_grc_percentage, high_risk_findings",
	}, "\n")
}
