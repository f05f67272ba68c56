package extract

import (
	"regexp"
	"strings"
)

var (
	// paramRe matches "Parameter AC-2(a): value" style cells.
	paramRe = regexp.MustCompile(`^Parameter\s+(\S+?):\s*(.*)`)

	// partLabelRe matches "Part a:" or "Part (a):" at the start of a cell.
	partLabelRe = regexp.MustCompile(`(?i)^Part\s+\(?([a-z])\)?:`)
)

// summaryFields holds the typed sub-fields canonicalized from a summary
// table's cells.
type summaryFields struct {
	status      string
	origination string
	roles       string
	params      map[string]string
}

// parseSummary canonicalizes a summary table's cells by label prefix.
// Cells are scanned independently; order only matters for the header,
// which Classify has already consumed. Malformed parameter cells (no
// colon-delimited value) are skipped silently.
func parseSummary(cellTexts []string) summaryFields {
	fields := summaryFields{params: make(map[string]string)}

	for _, text := range cellTexts {
		trimmed := strings.TrimSpace(text)

		switch {
		case strings.HasPrefix(trimmed, "Responsible Role:"):
			fields.roles = strings.TrimSpace(strings.TrimPrefix(trimmed, "Responsible Role:"))
		case strings.HasPrefix(trimmed, "Implementation Status"):
			fields.status = trimmed
		case strings.HasPrefix(trimmed, "Control Origination"):
			fields.origination = trimmed
		case strings.HasPrefix(trimmed, "Parameter "):
			if m := paramRe.FindStringSubmatch(trimmed); m != nil {
				fields.params[m[1]] = m[2]
			}
		}
	}

	return fields
}

// parseStatement canonicalizes a statement table into lettered parts and
// a raw narrative transcript. The header cell is skipped; every other
// non-empty cell lands in the transcript whether or not it also matched a
// part label, so the transcript is always complete.
func parseStatement(cellTexts []string) (map[string]string, string) {
	parts := make(map[string]string)
	var lines []string

	if len(cellTexts) == 0 {
		return parts, ""
	}

	for _, text := range cellTexts[1:] {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		if m := partLabelRe.FindStringSubmatch(text); m != nil {
			letter := strings.ToLower(m[1])
			parts[letter] = strings.TrimSpace(partLabelRe.ReplaceAllString(text, ""))
		}
		lines = append(lines, text)
	}

	return parts, strings.Join(lines, "\n")
}
