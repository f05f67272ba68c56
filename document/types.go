// Package document provides types for ingested compliance documents and
// the table cell model produced by external layout converters.
package document

// Cell is a single table cell from the layout converter.
// Row and column spans use half-open [start, end) index pairs so merged
// cells are representable without a separate span flag.
type Cell struct {
	// Text is the cell's plain-text content.
	Text string `json:"text"`

	// StartRow and EndRow bound the rows this cell covers.
	StartRow int `json:"start_row"`
	EndRow   int `json:"end_row"`

	// StartCol and EndCol bound the columns this cell covers.
	StartCol int `json:"start_col"`
	EndCol   int `json:"end_col"`
}

// Table is an ordered sequence of cells from one document table.
// Tables are owned by the layout converter and treated as read-only input.
type Table struct {
	// Cells holds the table's cells in document order.
	Cells []Cell `json:"cells"`
}

// CellTexts returns the text of every cell in document order.
func (t Table) CellTexts() []string {
	texts := make([]string, len(t.Cells))
	for i, c := range t.Cells {
		texts[i] = c.Text
	}
	return texts
}

// Document represents a parsed document with its content and metadata.
type Document struct {
	// ID is the document identifier (typically derived from file path).
	ID string `json:"id"`

	// Filename is the original filename.
	Filename string `json:"filename"`

	// Content is the raw document content.
	Content string `json:"content"`

	// Frontmatter contains parsed YAML frontmatter if present.
	Frontmatter map[string]any `json:"frontmatter,omitempty"`

	// Body is the content without frontmatter.
	Body string `json:"body"`

	// Tables holds structured tables when the input came from a layout
	// converter export. Empty for plain markdown input.
	Tables []Table `json:"tables,omitempty"`
}

// HasFrontmatter returns true if the document has parsed frontmatter.
func (d *Document) HasFrontmatter() bool {
	return len(d.Frontmatter) > 0
}

// HasTables returns true if the document carries structured tables.
func (d *Document) HasTables() bool {
	return len(d.Tables) > 0
}
