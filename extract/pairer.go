package extract

import "github.com/c360studio/oscalgen/document"

// Controls walks the document's tables in order and emits one
// ControlRecord per recognized summary table. A summary table at index i
// pairs with the table at i+1 when that table is a statement table; the
// record then carries narrative fields and the scan skips both tables.
// Unrecognized tables are skipped without affecting pairing state.
//
// A statement table with no preceding summary table produces no record;
// an accepted information-loss boundary, not a failure. Duplicate control
// IDs are emitted as independent records in document order, since
// legitimate documents repeat controls in appendices.
func Controls(tables []document.Table) []ControlRecord {
	var records []ControlRecord

	i := 0
	for i < len(tables) {
		cellTexts := tables[i].CellTexts()
		kind, controlID := Classify(cellTexts)
		if kind != KindSummary {
			i++
			continue
		}

		fields := parseSummary(cellTexts)

		parts := make(map[string]string)
		rawNarrative := ""
		if i+1 < len(tables) {
			nextTexts := tables[i+1].CellTexts()
			if nextKind, _ := Classify(nextTexts); nextKind == KindStatement {
				parts, rawNarrative = parseStatement(nextTexts)
				i += 2 // skip the paired statement table
			} else {
				i++
			}
		} else {
			i++
		}

		records = append(records, ControlRecord{
			ControlID:    controlID,
			Status:       fields.status,
			Origination:  fields.origination,
			Roles:        fields.roles,
			Params:       fields.params,
			Parts:        parts,
			RawNarrative: rawNarrative,
		})
	}

	return records
}
