package extract

// ControlRecord is the canonical, typed representation of one control's
// extracted data. Records are built once by Controls and never mutated.
type ControlRecord struct {
	// ControlID is the lowercase control identifier, e.g. "ac-2" or
	// "ac-2(1)" for enhancements.
	ControlID string `json:"control_id"`

	// Status is the raw implementation-status cell text. Blank templates
	// enumerate every status option inline, so disambiguation is deferred
	// to the downstream reasoner rather than guessed here.
	Status string `json:"status"`

	// Origination is the raw control-origination cell text.
	Origination string `json:"origination"`

	// Roles is the responsible-role text with the label stripped.
	Roles string `json:"roles"`

	// Params maps parameter identifiers to their values.
	Params map[string]string `json:"params"`

	// Parts maps single-letter part identifiers to narrative text.
	Parts map[string]string `json:"parts"`

	// RawNarrative is the full transcript of the statement table's cells,
	// kept as a fallback when no lettered parts were recognized. It is a
	// superset of Parts, not a complement.
	RawNarrative string `json:"raw_narrative"`
}

// HasNarrative reports whether any narrative content was paired with the
// summary table.
func (r ControlRecord) HasNarrative() bool {
	return len(r.Parts) > 0 || r.RawNarrative != ""
}
