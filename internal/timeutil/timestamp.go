package timeutil

import (
	"fmt"
	"time"
)

// CanonicalLayout is the wall-clock rendering used for every parsed timestamp.
// It carries no offset: the value is meaningful only in the configured timezone.
const CanonicalLayout = "2006-01-02 15:04:05"

// Timestamp is a raw export timestamp parsed in the configured timezone
type Timestamp struct {
	// Time is the parsed instant, expressed in the configured location
	Time time.Time
	// Canonical is Time rendered with CanonicalLayout
	Canonical string
	// OffsetMismatch is true when the raw value carried an explicit UTC offset
	// that differs from the configured timezone's offset at that instant.
	// Canonical is then the configured-zone wall clock, not the source's.
	OffsetMismatch bool
	// SourceOffset is the offset the raw value was parsed with (e.g., "-05:00")
	SourceOffset string
}

// ParseError describes a timestamp that did not match the configured format.
// Err is the diagnostic reported by the time package.
type ParseError struct {
	Raw    string
	Format string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Layout != e.Format {
		return fmt.Sprintf("date '%s' does not match format '%s' (layout %q): %v", e.Raw, e.Format, e.Layout, e.Err)
	}
	return fmt.Sprintf("date '%s' does not match format '%s': %v", e.Raw, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseTimestamp parses raw strictly against format in the named timezone.
// format may be a Go layout, a named alias (ATOM, RFC3339, ISO8601, ...) or a
// PHP date() style format; see ResolveLayout.
//
// The result is localized to timezone, never normalized to UTC. Parsing a
// wall-clock value with the wrong timezone can move it to a different
// calendar day, which changes the day the work is billed to.
func ParseTimestamp(raw, format, timezone string) (Timestamp, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return Timestamp{}, err
	}
	return ParseTimestampIn(raw, format, loc)
}

// ParseTimestampIn is ParseTimestamp with an already resolved location
func ParseTimestampIn(raw, format string, loc *time.Location) (Timestamp, error) {
	layout := ResolveLayout(format)

	if raw == "" {
		return Timestamp{}, &ParseError{Raw: raw, Format: format, Layout: layout, Err: fmt.Errorf("date cannot be empty")}
	}

	t, err := time.ParseInLocation(layout, raw, loc)
	if err != nil {
		return Timestamp{}, &ParseError{Raw: raw, Format: format, Layout: layout, Err: err}
	}

	_, sourceOffset := t.Zone()
	local := t.In(loc)
	_, localOffset := local.Zone()

	return Timestamp{
		Time:           local,
		Canonical:      local.Format(CanonicalLayout),
		OffsetMismatch: sourceOffset != localOffset,
		SourceOffset:   t.Format("-07:00"),
	}, nil
}
