package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var cmmcLevels = []MaturityLevel{
	{Level: "Level 1", PracticeIDs: []string{"AC.L1-3.1.1", "AC.L1-3.1.2", "IA.L1-3.5.1"}},
	{Level: "Level 2", PracticeIDs: []string{"AC.L2-3.1.3", "AU.L2-3.3.1"}},
	{Level: "Level 3", PracticeIDs: []string{"CA.L3-3.12.1"}},
}

func TestProgressMaturity(t *testing.T) {
	tests := []struct {
		name        string
		implemented []string
		wantLevel   string
		wantGaps    int
	}{
		{
			name:        "nothing implemented",
			implemented: nil,
			wantLevel:   "None",
			wantGaps:    3,
		},
		{
			name:        "level 1 complete",
			implemented: []string{"AC.L1-3.1.1", "AC.L1-3.1.2", "IA.L1-3.5.1"},
			wantLevel:   "Level 1",
			wantGaps:    2,
		},
		{
			name: "all levels complete",
			implemented: []string{
				"AC.L1-3.1.1", "AC.L1-3.1.2", "IA.L1-3.5.1",
				"AC.L2-3.1.3", "AU.L2-3.3.1",
				"CA.L3-3.12.1",
			},
			wantLevel: "Level 3",
			wantGaps:  0,
		},
		{
			name:        "case-insensitive practice matching",
			implemented: []string{"ac.l1-3.1.1", "AC.L1-3.1.2", "ia.l1-3.5.1"},
			wantLevel:   "Level 1",
			wantGaps:    2,
		},
		{
			name: "level 2 practices cannot skip a level 1 gap",
			implemented: []string{
				"AC.L1-3.1.1", "AC.L1-3.1.2",
				"AC.L2-3.1.3", "AU.L2-3.3.1",
			},
			wantLevel: "None",
			wantGaps:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ProgressMaturity(cmmcLevels, tt.implemented)
			assert.Equal(t, tt.wantLevel, result.AchievedLevel)
			assert.Equal(t, tt.wantGaps, result.GapsToNextLevel)
		})
	}
}

func TestProgressMaturity_EmptyLevels(t *testing.T) {
	result := ProgressMaturity(nil, []string{"AC.L1-3.1.1"})
	assert.Equal(t, "None", result.AchievedLevel)
	assert.Zero(t, result.GapsToNextLevel)
}

func TestImplementedPractices(t *testing.T) {
	impls := []Implementation{
		{ControlID: "AC.L1-3.1.1", Status: "Implemented"},
		{ControlID: "AC.L1-3.1.2", Status: "satisfied"},
		{ControlID: "IA.L1-3.5.1", Status: "planned"},
		{ControlID: "AU.L2-3.3.1", Status: "not-applicable"},
	}

	ids := ImplementedPractices(impls)
	assert.Equal(t, []string{"AC.L1-3.1.1", "AC.L1-3.1.2"}, ids)
}
