// Package evidence resolves and loads evidence files for assessments.
// Inputs may be literal paths or glob patterns; read failures are tolerated
// so the assessment can still reference which files were attempted.
package evidence

import (
	"os"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// excerptChars caps per-file excerpt size to stay within context-window
// budget while still giving the model enough text for heuristic matching.
const excerptChars = 2000

// unreadablePlaceholder marks entries whose file could not be read.
const unreadablePlaceholder = "[ERROR: File could not be read]"

// globRe detects glob metacharacters in an input path.
var globRe = regexp.MustCompile(`[\*\?\[]`)

// Entry is one loaded evidence file.
type Entry struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Summary is a truncated view of an entry for prompt embedding.
type Summary struct {
	Path    string `json:"path"`
	Excerpt string `json:"excerpt"`
}

// FileResult reports how a single evidence file relates to a control.
type FileResult struct {
	Path           string `json:"path"`
	Readable       bool   `json:"readable"`
	Excerpt        string `json:"excerpt"`
	HeuristicMatch bool   `json:"heuristic_match"`
}

// looksLikeGlob reports whether the input contains glob metacharacters.
func looksLikeGlob(pattern string) bool {
	return globRe.MatchString(pattern)
}

// ResolveInputs expands glob patterns and deduplicates the combined list,
// preserving first-seen order. Literal paths pass through even if the file
// does not exist; loading reports unreadable files later.
func ResolveInputs(inputs []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			resolved = append(resolved, path)
		}
	}

	for _, inp := range inputs {
		if looksLikeGlob(inp) {
			matches, err := doublestar.FilepathGlob(inp)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				add(m)
			}
		} else {
			add(inp)
		}
	}

	return resolved, nil
}

// Load reads each path into an Entry. Read errors are silently tolerated;
// the path is kept with a placeholder so findings can still reference it.
func Load(paths []string) []Entry {
	entries := make([]Entry, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			entries = append(entries, Entry{Path: path, Content: unreadablePlaceholder})
			continue
		}
		entries = append(entries, Entry{Path: path, Content: string(content)})
	}
	return entries
}

// Summarize truncates each entry's content to the excerpt budget.
func Summarize(entries []Entry) []Summary {
	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		excerpt := e.Content
		if len(excerpt) > excerptChars {
			excerpt = excerpt[:excerptChars]
		}
		summaries = append(summaries, Summary{Path: e.Path, Excerpt: excerpt})
	}
	return summaries
}

// Validate checks each evidence file for a mention of the control ID.
// The heuristic match is a hint, not definitive: it only checks whether the
// control ID appears in the file text. The model determines actual
// evidence sufficiency.
func Validate(controlID string, paths []string) []FileResult {
	token := strings.ToLower(strings.TrimSpace(controlID))

	results := make([]FileResult, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			results = append(results, FileResult{Path: path})
			continue
		}

		text := string(content)
		excerpt := text
		if len(excerpt) > excerptChars {
			excerpt = excerpt[:excerptChars]
		}
		results = append(results, FileResult{
			Path:           path,
			Readable:       true,
			Excerpt:        excerpt,
			HeuristicMatch: strings.Contains(strings.ToLower(text), token),
		})
	}
	return results
}
