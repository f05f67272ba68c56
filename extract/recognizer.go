// Package extract recovers canonical control records from the
// two-table-per-control layout used by FedRAMP-style security plans.
// A "Control Summary Information" table carries per-control metadata
// (status, origination, roles, parameters) and is optionally followed by
// a "What is the solution" table carrying the lettered implementation
// narrative. Everything here is a pure function over cell text.
package extract

import (
	"regexp"
	"strings"
)

// Kind classifies a table by its header cell.
type Kind int

// Table kinds recognized by Classify.
const (
	// KindNone marks tables that belong to neither pattern; the pipeline
	// skips them silently.
	KindNone Kind = iota

	// KindSummary marks a per-control metadata table.
	KindSummary

	// KindStatement marks a per-control narrative table.
	KindStatement
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindSummary:
		return "summary"
	case KindStatement:
		return "statement"
	default:
		return "none"
	}
}

var (
	// summaryHeaderRe matches "AC-2 Control Summary Information" with an
	// optional enhancement number, e.g. "AC-2(1)".
	summaryHeaderRe = regexp.MustCompile(`^([A-Z]{2}-\d+(?:\(\d+\))?)\s+Control Summary Information`)

	// statementHeaderRe matches "AC-2 What is the solution..."
	statementHeaderRe = regexp.MustCompile(`^([A-Z]{2}-\d+(?:\(\d+\))?)\s+What is the solution`)
)

// Classify inspects a table's cell texts and reports whether it is a
// control summary table, a control statement table, or neither. For
// summary and statement tables the second return value is the control ID,
// lowercased with any enhancement suffix preserved.
func Classify(cellTexts []string) (Kind, string) {
	if len(cellTexts) == 0 {
		return KindNone, ""
	}

	if m := summaryHeaderRe.FindStringSubmatch(cellTexts[0]); m != nil {
		return KindSummary, strings.ToLower(m[1])
	}
	if m := statementHeaderRe.FindStringSubmatch(cellTexts[0]); m != nil {
		return KindStatement, strings.ToLower(m[1])
	}
	return KindNone, ""
}
