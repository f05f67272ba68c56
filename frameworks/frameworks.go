// Package frameworks provides embedded compliance framework data and
// lookups over it. Most frameworks carry a flat controls array; CMMC nests
// practices under levels, NIST AI RMF nests categories under functions, and
// FedRAMP carries a baselines array.
package frameworks

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/*.json
var dataFS embed.FS

// Files maps framework display names to their embedded data files.
var Files = map[string]string{
	"NIST 800-53": "nist-800-53-r5.json",
	"CMMC":        "cmmc-2.0-practices.json",
	"NIST AI RMF": "nist-ai-rmf.json",
	"ISO 27001":   "iso-27001.json",
	"FedRAMP":     "fedramp-baselines.json",
}

// Control is a single control, practice, or category from a framework data set.
type Control struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Requirements         []string `json:"requirements"`
	AssessmentObjectives []string `json:"assessment_objectives,omitempty"`

	// Level is set for CMMC practices (the level they belong to).
	Level string `json:"level,omitempty"`
	// Function is set for NIST AI RMF categories (the parent function ID).
	Function string `json:"function,omitempty"`
}

// frameworkFile is the on-disk shape shared by all framework data files.
// Only the sections a given framework uses are populated.
type frameworkFile struct {
	Framework string    `json:"framework"`
	Version   string    `json:"version"`
	Controls  []Control `json:"controls"`
	Levels    []struct {
		Level       string    `json:"level"`
		Description string    `json:"description"`
		Practices   []Control `json:"practices"`
	} `json:"levels"`
	Functions []struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		Categories []Control `json:"categories"`
	} `json:"functions"`
	Baselines []struct {
		Baseline    string `json:"baseline"`
		Description string `json:"description"`
	} `json:"baselines"`
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*frameworkFile)
)

// loadFramework parses a framework data file, caching the result.
func loadFramework(name string) (*frameworkFile, error) {
	file, ok := Files[name]
	if !ok {
		return nil, fmt.Errorf("unknown framework: %s", name)
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if f, ok := cache[name]; ok {
		return f, nil
	}

	raw, err := dataFS.ReadFile("data/" + file)
	if err != nil {
		return nil, fmt.Errorf("read framework data %s: %w", file, err)
	}

	var f frameworkFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse framework data %s: %w", file, err)
	}

	cache[name] = &f
	return &f, nil
}

// normalize lets callers pass "ac-1" or "AC-1" interchangeably.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindControl locates a control by ID within a framework, handling each
// framework's data structure. Returns nil if the framework is known but
// the control is not; returns an error only for unknown frameworks.
func FindControl(framework, controlID string) (*Control, error) {
	data, err := loadFramework(framework)
	if err != nil {
		return nil, err
	}
	target := normalize(controlID)

	for i := range data.Controls {
		if normalize(data.Controls[i].ID) == target {
			c := data.Controls[i]
			return &c, nil
		}
	}

	if framework == "CMMC" {
		for _, level := range data.Levels {
			for i := range level.Practices {
				if normalize(level.Practices[i].ID) == target {
					c := level.Practices[i]
					c.Level = level.Level
					return &c, nil
				}
			}
		}
	}

	if framework == "NIST AI RMF" {
		for _, fn := range data.Functions {
			for i := range fn.Categories {
				if normalize(fn.Categories[i].ID) == target {
					c := fn.Categories[i]
					c.Function = fn.ID
					return &c, nil
				}
			}
		}
	}

	if framework == "FedRAMP" {
		for _, b := range data.Baselines {
			if normalize(b.Baseline) == target {
				return &Control{
					ID:           b.Baseline,
					Name:         fmt.Sprintf("FedRAMP %s baseline", b.Baseline),
					Requirements: []string{b.Description},
				}, nil
			}
		}
	}

	return nil, nil
}

// Lookup is the result of a control lookup.
type Lookup struct {
	Framework            string   `json:"framework"`
	ControlID            string   `json:"control_id"`
	ControlName          string   `json:"control_name,omitempty"`
	Requirements         []string `json:"requirements"`
	AssessmentObjectives []string `json:"assessment_objectives"`
	Found                bool     `json:"found"`
}

// LookupControl fetches control details from a framework data set.
// A miss returns a Lookup with Found=false rather than an error, so
// callers can report "not in data set" without special-casing.
func LookupControl(framework, controlID string) (Lookup, error) {
	ctrl, err := FindControl(framework, controlID)
	if err != nil {
		return Lookup{}, err
	}
	if ctrl == nil {
		return Lookup{
			Framework:            framework,
			ControlID:            controlID,
			Requirements:         []string{},
			AssessmentObjectives: []string{},
		}, nil
	}
	return Lookup{
		Framework:            framework,
		ControlID:            ctrl.ID,
		ControlName:          ctrl.Name,
		Requirements:         ctrl.Requirements,
		AssessmentObjectives: ctrl.AssessmentObjectives,
		Found:                true,
	}, nil
}

// ListFrameworks returns the names of all embedded frameworks.
func ListFrameworks() []string {
	names := make([]string, 0, len(Files))
	for name := range Files {
		names = append(names, name)
	}
	return names
}
