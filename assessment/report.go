// Package assessment runs multi-framework compliance assessments: evidence
// is resolved and excerpted, the oracle receives an orchestrator prompt
// with the framework scope, and the structured response becomes a Report.
// Unlike conversion, a missing structured payload degrades to an explicit
// fallback report rather than a hard failure, so batch assessments always
// yield an inspectable result.
package assessment

import (
	"github.com/c360studio/oscalgen/assess"
)

// Input identifies what to assess.
type Input struct {
	// Framework is the framework name, e.g. "NIST 800-53" or "CMMC 2.0".
	Framework string

	// Baseline is the baseline or level within the framework, e.g.
	// "Moderate" or "Level 2".
	Baseline string

	// Scope describes the system or boundary under assessment.
	Scope string

	// InputPaths lists evidence files; glob patterns are expanded.
	InputPaths []string
}

// Finding is one per-control assessment finding.
type Finding struct {
	ControlID            string            `json:"control_id"`
	ControlName          string            `json:"control_name,omitempty"`
	Framework            string            `json:"framework,omitempty"`
	Status               string            `json:"status"`
	ImplementationStatus string            `json:"implementation_status,omitempty"`
	ControlOrigination   string            `json:"control_origination,omitempty"`
	InheritedFrom        string            `json:"inherited_from,omitempty"`
	GapDescription       string            `json:"gap_description,omitempty"`
	EvidenceReviewed     []string          `json:"evidence_reviewed,omitempty"`
	Recommendation       string            `json:"recommendation,omitempty"`
	RiskLevel            string            `json:"risk_level,omitempty"`
	POAMRequired         bool              `json:"poam_required,omitempty"`
	POAMEntry            *assess.POAMEntry `json:"poam_entry,omitempty"`
	RelatedControls      []RelatedControl  `json:"related_controls,omitempty"`
	LastAssessedDate     string            `json:"last_assessed_date,omitempty"`
	AssessmentFrequency  string            `json:"assessment_frequency,omitempty"`
	AIRiskCategory       string            `json:"ai_risk_category,omitempty"`
	AIRMFFunction        string            `json:"ai_rmf_function,omitempty"`
}

// RelatedControl references an equivalent control in another framework.
type RelatedControl struct {
	Framework string `json:"framework"`
	ControlID string `json:"control_id"`
}

// ConmonMetadata carries continuous-monitoring posture figures.
type ConmonMetadata struct {
	LastFullAssessmentDate     string  `json:"last_full_assessment_date,omitempty"`
	ControlsAssessedThisPeriod int     `json:"controls_assessed_this_period,omitempty"`
	TotalControlsInBaseline    int     `json:"total_controls_in_baseline,omitempty"`
	AnnualAssessmentCoverage   float64 `json:"annual_assessment_coverage,omitempty"`
	OpenScanFindings           int     `json:"open_scan_findings,omitempty"`
	SignificantChangeFlag      bool    `json:"significant_change_flag,omitempty"`
	NextAnnualAssessmentDue    string  `json:"next_annual_assessment_due,omitempty"`
}

// Metadata records what was assessed and when.
type Metadata struct {
	Framework        string          `json:"framework"`
	FrameworkVersion string          `json:"framework_version,omitempty"`
	BaselineOrLevel  string          `json:"baseline_or_level,omitempty"`
	AssessmentDate   string          `json:"assessment_date"`
	Scope            string          `json:"scope,omitempty"`
	Conmon           *ConmonMetadata `json:"conmon,omitempty"`
}

// Report is the full assessment result.
type Report struct {
	Metadata            Metadata       `json:"assessment_metadata"`
	Findings            []Finding      `json:"findings"`
	Summary             string         `json:"summary"`
	ControlsAssessed    int            `json:"controls_assessed,omitempty"`
	ControlsSatisfied   int            `json:"controls_satisfied,omitempty"`
	ControlsWithGaps    int            `json:"controls_with_gaps,omitempty"`
	OverallPercentage   float64        `json:"overall_grc_percentage"`
	HighRiskFindings    int            `json:"high_risk_findings,omitempty"`
	CMMCLevelAchievable string         `json:"cmmc_level_achievable,omitempty"`
	CMMCGapsToNextLevel int            `json:"cmmc_gaps_to_next_level,omitempty"`
	AIRiskTier          string         `json:"ai_risk_tier,omitempty"`
	AIRMFMaturity       map[string]any `json:"ai_rmf_maturity,omitempty"`
}
