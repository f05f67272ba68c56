package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/c360studio/oscalgen/document"
)

// Parser defines the interface for document parsers.
type Parser interface {
	// Parse parses a document and returns structured data.
	Parse(filename string, content []byte) (*document.Document, error)

	// CanParse returns true if this parser handles the given MIME type.
	CanParse(mimeType string) bool

	// MimeType returns the primary MIME type for this parser.
	MimeType() string
}

// Registry manages document parsers.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser // keyed by primary MIME type
}

// DefaultRegistry is the global parser registry with default parsers.
var DefaultRegistry = NewRegistry()

// NewRegistry creates a new parser registry with default parsers.
func NewRegistry() *Registry {
	r := &Registry{
		parsers: make(map[string]Parser),
	}

	r.Register(NewMarkdownParser())
	r.Register(NewLayoutTablesParser())
	r.Register(NewHTMLParser())

	return r
}

// Register adds a parser to the registry.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers[p.MimeType()] = p
}

// GetByMimeType returns a parser for the given MIME type.
func (r *Registry) GetByMimeType(mimeType string) Parser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Direct match
	if p, ok := r.parsers[mimeType]; ok {
		return p
	}

	// Check if any parser can handle this type
	for _, p := range r.parsers {
		if p.CanParse(mimeType) {
			return p
		}
	}

	return nil
}

// GetByExtension returns a parser for a file based on its extension.
func (r *Registry) GetByExtension(filename string) Parser {
	mimeType := MimeTypeFromExtension(filepath.Ext(filename))
	return r.GetByMimeType(mimeType)
}

// Parse parses a document using the appropriate parser.
func (r *Registry) Parse(filename string, content []byte) (*document.Document, error) {
	parser := r.GetByExtension(filename)
	if parser == nil {
		return nil, fmt.Errorf("no parser for file type: %s", filepath.Ext(filename))
	}
	return parser.Parse(filename, content)
}

// ListMimeTypes returns all registered MIME types.
func (r *Registry) ListMimeTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.parsers))
	for t := range r.parsers {
		types = append(types, t)
	}
	return types
}

// MimeTypeFromExtension returns the MIME type for a file extension.
func MimeTypeFromExtension(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	case ".html", ".htm":
		return "text/html"
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
