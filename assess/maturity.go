package assess

// MaturityLevel is one ordered tier of a maturity model, achieved only
// when every one of its practices is implemented.
type MaturityLevel struct {
	// Level is the tier name, e.g. "Level 1".
	Level string `json:"level"`

	// PracticeIDs lists the practices gating this tier.
	PracticeIDs []string `json:"practice_ids"`
}

// MaturityResult reports achieved maturity after an ordered gate-check.
type MaturityResult struct {
	// AchievedLevel is the highest fully-satisfied level, or "None".
	AchievedLevel string `json:"level"`

	// GapsToNextLevel counts the missing practices in the first
	// unsatisfied level. Zero when every level is achieved.
	GapsToNextLevel int `json:"gaps_to_next_level"`
}

// ProgressMaturity walks levels in ascending order; a level is achieved
// only when all of its practices appear in the implemented set (matched
// case-insensitively). The first level with any missing practice stops
// progression and its missing-practice count is reported as the gap to
// the next level. Achievement is therefore monotonic: a later level can
// never be reported achieved past an earlier gap.
func ProgressMaturity(levels []MaturityLevel, implementedPracticeIDs []string) MaturityResult {
	implemented := make(map[string]bool, len(implementedPracticeIDs))
	for _, id := range implementedPracticeIDs {
		implemented[normalize(id)] = true
	}

	result := MaturityResult{AchievedLevel: "None"}

	for _, level := range levels {
		missing := 0
		for _, practice := range level.PracticeIDs {
			if !implemented[normalize(practice)] {
				missing++
			}
		}
		if missing > 0 {
			result.GapsToNextLevel = missing
			break
		}
		result.AchievedLevel = level.Level
	}

	return result
}

// Implementation is one control's reported status, the input shape used
// when deriving the implemented set from assessment findings.
type Implementation struct {
	ControlID string `json:"control_id"`
	Status    string `json:"status"`
}

// ImplementedPractices filters implementations down to the practice IDs
// whose status counts as satisfied.
func ImplementedPractices(implementations []Implementation) []string {
	var ids []string
	for _, impl := range implementations {
		switch normalize(impl.Status) {
		case "implemented", "satisfied":
			ids = append(ids, impl.ControlID)
		}
	}
	return ids
}
