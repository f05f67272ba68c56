package frameworks

import (
	"strings"

	"github.com/c360studio/oscalgen/assess"
)

// GapReport lists the framework requirements an implementation description
// does not appear to cover.
type GapReport struct {
	ControlID                 string   `json:"control_id"`
	Requirements              []string `json:"requirements"`
	ImplementationDescription string   `json:"implementation_description"`
	HeuristicGaps             []string `json:"heuristic_gaps"`
}

// AnalyzeGaps flags requirements whose text does not appear in the
// implementation description. This is substring matching, not semantic
// analysis: it provides a fast first-pass signal, and the model is
// expected to compare requirements semantically on top of it.
func AnalyzeGaps(framework, controlID, implementationDescription string) (GapReport, error) {
	ctrl, err := FindControl(framework, controlID)
	if err != nil {
		return GapReport{}, err
	}
	if ctrl == nil {
		return GapReport{
			ControlID:                 controlID,
			Requirements:              []string{},
			ImplementationDescription: implementationDescription,
			HeuristicGaps:             []string{"Control not found in data set."},
		}, nil
	}

	description := normalize(implementationDescription)
	gaps := []string{}
	for _, req := range ctrl.Requirements {
		if !strings.Contains(description, normalize(req)) {
			gaps = append(gaps, req)
		}
	}

	return GapReport{
		ControlID:                 ctrl.ID,
		Requirements:              ctrl.Requirements,
		ImplementationDescription: implementationDescription,
		HeuristicGaps:             gaps,
	}, nil
}

// CMMCLevels returns the CMMC maturity gate in level order, ready for
// assess.ProgressMaturity.
func CMMCLevels() ([]assess.MaturityLevel, error) {
	data, err := loadFramework("CMMC")
	if err != nil {
		return nil, err
	}

	levels := make([]assess.MaturityLevel, 0, len(data.Levels))
	for _, lvl := range data.Levels {
		ids := make([]string, 0, len(lvl.Practices))
		for _, p := range lvl.Practices {
			ids = append(ids, p.ID)
		}
		levels = append(levels, assess.MaturityLevel{
			Level:       lvl.Level,
			PracticeIDs: ids,
		})
	}
	return levels, nil
}
