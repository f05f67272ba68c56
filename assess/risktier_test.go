package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRiskTier(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantTier    RiskTier
		wantRMF     string
	}{
		{
			name:        "social scoring is unacceptable",
			description: "A social scoring platform for citizen ranking",
			wantTier:    TierUnacceptable,
			wantRMF:     "govern",
		},
		{
			name:        "subliminal techniques are unacceptable",
			description: "Uses subliminal cues to influence purchases",
			wantTier:    TierUnacceptable,
			wantRMF:     "govern",
		},
		{
			name:        "biometric identification is high risk",
			description: "Biometric identification at building entrances",
			wantTier:    TierHigh,
			wantRMF:     "map",
		},
		{
			name:        "employment screening is high risk",
			description: "Resume ranking for employment decisions",
			wantTier:    TierHigh,
			wantRMF:     "map",
		},
		{
			name:        "chatbot is limited risk",
			description: "Customer support chatbot for billing questions",
			wantTier:    TierLimited,
			wantRMF:     "measure",
		},
		{
			name:        "recommendation engine is limited risk",
			description: "Product recommendation engine for the storefront",
			wantTier:    TierLimited,
			wantRMF:     "measure",
		},
		{
			name:        "everything else is minimal",
			description: "Spell checker for internal documents",
			wantTier:    TierMinimal,
			wantRMF:     "manage",
		},
		{
			name:        "most severe group wins over later matches",
			description: "A social scoring chatbot with biometric login",
			wantTier:    TierUnacceptable,
			wantRMF:     "govern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClassifyRiskTier(tt.description)
			assert.Equal(t, tt.wantTier, result.Tier)
			assert.Equal(t, tt.wantRMF, result.RMFFunction)
		})
	}
}
