package frameworks

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

//go:embed data/framework-mappings.json
var mappingsFS embed.FS

// RelatedControl identifies a control in a target framework.
type RelatedControl struct {
	Framework string `json:"framework"`
	ControlID string `json:"control_id"`
}

// ControlMapping lists the cross-framework relatives of one source control.
type ControlMapping struct {
	SourceControlID string           `json:"source_control_id"`
	Related         []RelatedControl `json:"related"`
}

type mappingsFile struct {
	Version  string `json:"version"`
	Mappings []struct {
		Source   string `json:"source"`
		Target   string `json:"target"`
		Mappings []struct {
			SourceControlID string `json:"source_control_id"`
			TargetControlID string `json:"target_control_id"`
		} `json:"mappings"`
	} `json:"mappings"`
}

var (
	mappingsOnce sync.Once
	mappingsData *mappingsFile
	mappingsErr  error
)

func loadMappings() (*mappingsFile, error) {
	mappingsOnce.Do(func() {
		raw, err := mappingsFS.ReadFile("data/framework-mappings.json")
		if err != nil {
			mappingsErr = fmt.Errorf("read framework mappings: %w", err)
			return
		}
		var f mappingsFile
		if err := json.Unmarshal(raw, &f); err != nil {
			mappingsErr = fmt.Errorf("parse framework mappings: %w", err)
			return
		}
		mappingsData = &f
	})
	return mappingsData, mappingsErr
}

// MapControls resolves each source control ID to its related controls in
// other frameworks. Controls with no known relatives get an empty Related
// slice, so the result always has one entry per input ID.
func MapControls(sourceFramework string, controlIDs []string) ([]ControlMapping, error) {
	data, err := loadMappings()
	if err != nil {
		return nil, err
	}

	result := make([]ControlMapping, 0, len(controlIDs))
	for _, cid := range controlIDs {
		target := normalize(cid)
		related := []RelatedControl{}
		for _, entry := range data.Mappings {
			if entry.Source != sourceFramework {
				continue
			}
			for _, m := range entry.Mappings {
				if normalize(m.SourceControlID) == target {
					related = append(related, RelatedControl{
						Framework: entry.Target,
						ControlID: m.TargetControlID,
					})
				}
			}
		}
		result = append(result, ControlMapping{SourceControlID: cid, Related: related})
	}

	return result, nil
}
