package timeutil

import (
	"strings"
	"time"
)

// DefaultFormat is the date format used when none is configured
const DefaultFormat = "ATOM"

// namedLayouts maps format aliases to Go layouts.
// ATOM and ISO8601 follow PHP's DateTime constants, which export tools commonly use.
var namedLayouts = map[string]string{
	"ATOM":             time.RFC3339,
	"RFC3339":          time.RFC3339,
	"RFC3339_EXTENDED": "2006-01-02T15:04:05.000Z07:00",
	"ISO8601":          "2006-01-02T15:04:05-0700",
	"CANONICAL":        CanonicalLayout,
	"DATETIME":         CanonicalLayout,
}

// phpTokens maps PHP date() format characters to Go layout elements.
// Offsets use the Z form so a trailing "Z" is accepted as UTC.
var phpTokens = map[rune]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'n': "1",
	'd': "02",
	'j': "2",
	'H': "15",
	'G': "15",
	'h': "03",
	'g': "3",
	'i': "04",
	's': "05",
	'v': "000",
	'u': "000000",
	'A': "PM",
	'a': "pm",
	'P': "Z07:00",
	'p': "Z07:00",
	'O': "Z0700",
	'T': "MST",
	'M': "Jan",
	'F': "January",
	'D': "Mon",
	'l': "Monday",
}

// ResolveLayout turns a configured date format into a Go time layout.
//
// Accepted forms:
//   - a named alias: ATOM, RFC3339, RFC3339_EXTENDED, ISO8601, CANONICAL, DATETIME
//   - a Go layout containing the reference year "2006" (e.g., "2006-01-02 15:04:05")
//   - a PHP date() format (e.g., "Y-m-d H:i:s", "Y-m-d\TH:i:sP", "d/m/Y")
func ResolveLayout(format string) string {
	if format == "" {
		format = DefaultFormat
	}
	if layout, ok := namedLayouts[strings.ToUpper(format)]; ok {
		return layout
	}
	if strings.Contains(format, "2006") {
		return format
	}
	return translatePHPFormat(format)
}

// translatePHPFormat converts PHP date() format characters to Go layout
// elements. A backslash escapes the following character; characters without
// a mapping are kept literally.
func translatePHPFormat(format string) string {
	var b strings.Builder
	escaped := false
	for _, r := range format {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if token, ok := phpTokens[r]; ok {
			b.WriteString(token)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
