package parser

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/c360studio/oscalgen/document"
)

// LayoutTablesParser parses the JSON export of an external document layout
// converter. The export carries the document's tables as ordered cell
// lists plus an optional markdown rendering of the full text.
type LayoutTablesParser struct{}

// NewLayoutTablesParser creates a new layout-export parser.
func NewLayoutTablesParser() *LayoutTablesParser {
	return &LayoutTablesParser{}
}

// layoutExport is the wire format produced by the layout converter.
type layoutExport struct {
	Filename string           `json:"filename,omitempty"`
	Markdown string           `json:"markdown,omitempty"`
	Tables   []document.Table `json:"tables"`
}

// Parse decodes a layout-converter JSON export into a Document with
// structured tables. The tables are kept read-only downstream.
func (p *LayoutTablesParser) Parse(filename string, content []byte) (*document.Document, error) {
	var export layoutExport
	if err := json.Unmarshal(content, &export); err != nil {
		return nil, fmt.Errorf("parse layout export %s: %w", filepath.Base(filename), err)
	}

	doc := &document.Document{
		ID:       generateID(filename, content),
		Filename: filepath.Base(filename),
		Content:  string(content),
		Body:     export.Markdown,
		Tables:   export.Tables,
	}
	return doc, nil
}

// CanParse returns true if this parser can handle the given MIME type.
func (p *LayoutTablesParser) CanParse(mimeType string) bool {
	return mimeType == "application/json"
}

// MimeType returns the primary MIME type for this parser.
func (p *LayoutTablesParser) MimeType() string {
	return "application/json"
}
