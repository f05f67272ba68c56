// Package assess implements the deterministic compliance calculators:
// FIPS 199 impact categorization, CMMC maturity progression, EU AI Act
// risk-tier classification, and POA&M finding generation. Every function
// here is pure: same inputs, same outputs, no I/O.
package assess

import (
	"fmt"
	"strings"
)

// Level is a FIPS 199 impact level.
type Level string

// Impact levels in ascending severity.
const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

// rank maps levels onto ordinals for the high-water-mark comparison.
// Unknown levels rank as low, matching the original's defaulting.
func (l Level) rank() int {
	switch l {
	case LevelModerate:
		return 2
	case LevelHigh:
		return 3
	default:
		return 1
	}
}

// levelFromRank is the inverse of rank.
func levelFromRank(r int) Level {
	switch r {
	case 2:
		return LevelModerate
	case 3:
		return LevelHigh
	default:
		return LevelLow
	}
}

// baselineFor maps the overall impact level to its FedRAMP baseline.
var baselineFor = map[Level]string{
	LevelLow:      "FedRAMP Low",
	LevelModerate: "FedRAMP Moderate",
	LevelHigh:     "FedRAMP High",
}

// ImpactResult is the outcome of a FIPS 199 categorization.
type ImpactResult struct {
	// Confidentiality, Integrity, and Availability echo the inputs.
	Confidentiality Level `json:"confidentiality"`
	Integrity       Level `json:"integrity"`
	Availability    Level `json:"availability"`

	// Overall is the high-water mark of the three objectives.
	Overall Level `json:"overall"`

	// Baseline is the FedRAMP baseline implied by Overall.
	Baseline string `json:"fedramp_baseline"`

	// DoDImpactLevel is the derived DoD tier (IL2/IL4/IL5/IL6), empty
	// when no tier applies.
	DoDImpactLevel string `json:"dod_impact_level,omitempty"`

	// Rationale explains each step of the determination.
	Rationale []string `json:"rationale"`
}

// CategorizeImpact applies the FIPS 199 high-water-mark rule: the overall
// system impact equals the highest of confidentiality, integrity, and
// availability. Data-type tags and mission text drive the DoD impact
// level, checked in strictly descending severity so the most severe
// signal always wins:
//
//	classified/secret data        → IL6
//	CUI + mission-critical text   → IL5
//	CUI                           → IL4
//	public data or overall low    → IL2
//	otherwise                     → no tier
func CategorizeImpact(confidentiality, integrity, availability Level, dataTypes []string, mission string) ImpactResult {
	overall := levelFromRank(maxRank(confidentiality.rank(), integrity.rank(), availability.rank()))

	normalized := make([]string, len(dataTypes))
	for i, t := range dataTypes {
		normalized[i] = normalize(t)
	}
	missionText := normalize(mission)

	var dodIL string
	switch {
	case anyContains(normalized, "classified") || anyContains(normalized, "secret"):
		dodIL = "IL6"
	case anyContains(normalized, "cui") &&
		(strings.Contains(missionText, "mission critical") || strings.Contains(missionText, "national security")):
		dodIL = "IL5"
	case anyContains(normalized, "cui"):
		dodIL = "IL4"
	case anyContains(normalized, "public") || overall == LevelLow:
		dodIL = "IL2"
	}

	rationale := []string{
		fmt.Sprintf("FIPS 199 categorization: C=%s, I=%s, A=%s", confidentiality, integrity, availability),
		fmt.Sprintf("High-water mark: %s (highest of C/I/A determines overall impact)", overall),
		fmt.Sprintf("FedRAMP baseline: %s", baselineFor[overall]),
	}
	if dodIL != "" {
		rationale = append(rationale, fmt.Sprintf("DoD Impact Level: %s", dodIL))
		if dodIL == "IL5" || dodIL == "IL6" {
			rationale = append(rationale,
				"Note: IL5/IL6 require DISA Cloud Computing SRG overlays beyond FedRAMP controls")
		}
	}
	rationale = append(rationale,
		fmt.Sprintf("Data types: %s", strings.Join(dataTypes, ", ")),
		fmt.Sprintf("Mission: %s", mission))

	return ImpactResult{
		Confidentiality: confidentiality,
		Integrity:       integrity,
		Availability:    availability,
		Overall:         overall,
		Baseline:        baselineFor[overall],
		DoDImpactLevel:  dodIL,
		Rationale:       rationale,
	}
}

func maxRank(ranks ...int) int {
	max := 1
	for _, r := range ranks {
		if r > max {
			max = r
		}
	}
	return max
}

// anyContains reports whether any entry contains the substring.
func anyContains(entries []string, substr string) bool {
	for _, e := range entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// normalize lowercases and trims for case-insensitive matching.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
