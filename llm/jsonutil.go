package llm

import (
	"regexp"
	"strings"
)

// Patterns for digging the artifact JSON out of an oracle completion.
// Models wrap the payload in markdown fences or prose more often than not.
var (
	// jsonBlockPattern matches an object inside a ```json fence.
	jsonBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	// jsonObjectPattern matches any object (greedy fallback).
	jsonObjectPattern = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	// jsonArrayBlockPattern matches an array inside a ```json fence.
	jsonArrayBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\[.*\\])\\s*```")
	// jsonArrayPattern matches any array (greedy fallback).
	jsonArrayPattern = regexp.MustCompile(`(?s)\[[\s\S]*\]`)
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractJSON pulls a JSON object out of an oracle completion, tolerating
// markdown fences, JavaScript-style comments, and trailing commas. An
// empty return means the completion carried no object at all; callers map
// that to their no-structured-output handling.
func ExtractJSON(content string) string {
	raw := extractRawJSON(content)
	if raw == "" {
		return ""
	}
	return cleanJSON(raw)
}

// ExtractJSONArray pulls a JSON array out of an oracle completion.
func ExtractJSONArray(content string) string {
	if matches := jsonArrayBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		return cleanJSON(matches[1])
	}
	if matches := jsonArrayPattern.FindString(content); matches != "" {
		return cleanJSON(matches)
	}
	return ""
}

func extractRawJSON(content string) string {
	// A fenced block is the strongest signal; prefer it over the greedy match
	if matches := jsonBlockPattern.FindStringSubmatch(content); len(matches) > 1 {
		return matches[1]
	}
	if matches := jsonObjectPattern.FindString(content); matches != "" {
		return matches
	}
	return ""
}

// cleanJSON strips JavaScript-style comments and trailing commas, the two
// invalid-JSON habits models show most.
func cleanJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, stripLineComment(line))
	}
	result := strings.Join(cleaned, "\n")

	result = trailingCommaPattern.ReplaceAllString(result, "$1")

	return result
}

// stripLineComment removes a // comment from a JSON line without touching
// string values, so hrefs like "https://example.com" survive intact.
func stripLineComment(line string) string {
	// Fast path: no // at all
	if !strings.Contains(line, "//") {
		return line
	}

	// Walk the line, tracking whether we are inside a string
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			trimmed := strings.TrimRight(line[:i], " \t")
			return trimmed
		}
	}
	return line
}
