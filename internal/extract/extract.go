// Package extract pulls issue keys and human comments out of free-form
// time-tracking text fields.
package extract

import "regexp"

// issueKeyPattern matches a Jira issue key anywhere in a string (e.g., "BSP-9", "AB2-104")
var issueKeyPattern = regexp.MustCompile(`[A-Z][A-Z0-9]+-\d+`)

// keyPrefixPattern matches an issue key at the very start of a string, followed by
// an optional "-", ":" or "." separator with optional whitespace around it.
// The remainder may span multiple lines.
var keyPrefixPattern = regexp.MustCompile(`(?s)^[A-Z][A-Z0-9]+-\d+\s*[-:.]?\s*(.*)$`)

// Extractor derives a value from a single candidate field.
// An empty result means the candidate was not usable.
type Extractor func(text string) string

// IssueKey returns the first issue key found in text.
// Returns false if text is empty or contains no key.
//
// Examples:
//   - "random characters BSP-9 more random characters" -> ("BSP-9", true)
//   - "BSP-9 and BSP-10" -> ("BSP-9", true)
//   - "no key here" -> ("", false)
func IssueKey(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	key := issueKeyPattern.FindString(text)
	return key, key != ""
}

// Comment strips a leading issue key prefix from text and returns the remainder.
// Text that does not start with an issue key is returned unchanged.
//
// Supported prefixes:
//
//	BSP-9 - Timesheets
//	BSP-9: Timesheets
//	BSP-9  :  Timesheets
//	BSP-9  Timesheets
//	BSP-9. Timesheets
func Comment(text string) string {
	matches := keyPrefixPattern.FindStringSubmatch(text)
	if matches == nil {
		return text
	}
	return matches[1]
}

// IssueKeyExtractor adapts IssueKey to the Extractor signature
func IssueKeyExtractor(text string) string {
	key, _ := IssueKey(text)
	return key
}

// FirstNonEmpty applies extractor to each candidate in order and returns the
// first non-empty result, or "" if no candidate yields a value.
func FirstNonEmpty(extractor Extractor, candidates ...string) string {
	for _, candidate := range candidates {
		if v := extractor(candidate); v != "" {
			return v
		}
	}
	return ""
}
