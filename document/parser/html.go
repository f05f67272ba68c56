package parser

import (
	"path/filepath"

	"github.com/c360studio/oscalgen/document"
	"github.com/c360studio/oscalgen/webdoc"
)

// HTMLParser parses HTML documents by converting them to markdown first.
// Policy pages exported from document management systems arrive as HTML;
// the webdoc converter strips the markup so extraction sees clean text.
type HTMLParser struct {
	converter *webdoc.Converter
}

// NewHTMLParser creates a new HTML parser.
func NewHTMLParser() *HTMLParser {
	return &HTMLParser{
		converter: webdoc.NewConverter(),
	}
}

// Parse converts HTML content to markdown and wraps it as a document.
// The page title, when the converter recovers one, lands in frontmatter
// so downstream prompts can reference it.
func (p *HTMLParser) Parse(filename string, content []byte) (*document.Document, error) {
	result, err := p.converter.Convert(content, "")
	if err != nil {
		return nil, err
	}

	doc := &document.Document{
		ID:       generateID(filename, content),
		Filename: filepath.Base(filename),
		Content:  string(content),
		Body:     result.Markdown,
	}

	if result.Title != "" {
		doc.Frontmatter = map[string]any{"title": result.Title}
	}

	return doc, nil
}

// CanParse returns true if this parser can handle the given MIME type.
func (p *HTMLParser) CanParse(mimeType string) bool {
	switch mimeType {
	case "text/html", "application/xhtml+xml":
		return true
	default:
		return false
	}
}

// MimeType returns the primary MIME type for this parser.
func (p *HTMLParser) MimeType() string {
	return "text/html"
}
