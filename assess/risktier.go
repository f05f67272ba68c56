package assess

import "strings"

// RiskTier is an EU AI Act risk tier.
type RiskTier string

// Risk tiers in descending severity.
const (
	TierUnacceptable RiskTier = "unacceptable"
	TierHigh         RiskTier = "high"
	TierLimited      RiskTier = "limited"
	TierMinimal      RiskTier = "minimal"
)

// RiskClassification pairs the EU AI Act tier with the NIST AI RMF
// function most relevant to systems at that tier.
type RiskClassification struct {
	Tier        RiskTier `json:"eu_ai_act_risk_tier"`
	RMFFunction string   `json:"nist_ai_rmf_function"`
}

// highRiskKeywords mark safety-critical or rights-impacting domains.
var highRiskKeywords = []string{"biometric", "critical infrastructure", "employment", "law enforcement"}

// ClassifyRiskTier scans a system description against keyword groups in
// descending severity; the first matching group wins and no scoring or
// blending happens across groups. Prohibited uses force the unacceptable
// tier, safety-critical domains the high tier, interactive systems the
// limited tier, and everything else defaults to minimal.
func ClassifyRiskTier(systemDescription string) RiskClassification {
	text := normalize(systemDescription)

	if strings.Contains(text, "social scoring") || strings.Contains(text, "subliminal") {
		return RiskClassification{Tier: TierUnacceptable, RMFFunction: "govern"}
	}
	for _, kw := range highRiskKeywords {
		if strings.Contains(text, kw) {
			return RiskClassification{Tier: TierHigh, RMFFunction: "map"}
		}
	}
	if strings.Contains(text, "chatbot") || strings.Contains(text, "recommendation") {
		return RiskClassification{Tier: TierLimited, RMFFunction: "measure"}
	}
	return RiskClassification{Tier: TierMinimal, RMFFunction: "manage"}
}
