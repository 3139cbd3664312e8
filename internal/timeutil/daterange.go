package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// Patterns used to explain why a day could not be parsed
var (
	yearOnlyRe     = regexp.MustCompile(`^\d{4}$`)
	yearMonthRe    = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
	monthDayRe     = regexp.MustCompile(`^\d{1,2}-\d{1,2}$`)
	dayMonthRe     = regexp.MustCompile(`^\d{1,2}/\d{1,2}$`)
	tooManyPartsRe = regexp.MustCompile(`^\d+[-/]\d+[-/]\d+[-/]`)
)

// DateRange is an inclusive span of time. A zero Start or End leaves that
// side open.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range is unbounded on both sides
func (r DateRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// ContainsCanonical parses a canonical timestamp in loc and reports whether it
// falls inside the range. Unparseable timestamps only match an unbounded range.
func (r DateRange) ContainsCanonical(ts string, loc *time.Location) bool {
	if r.IsZero() {
		return true
	}
	t, err := time.ParseInLocation(CanonicalLayout, ts, loc)
	if err != nil {
		return false
	}
	return r.Contains(t)
}

// String renders the range as "YYYY-MM-DD .. YYYY-MM-DD", with "…" for an open side
func (r DateRange) String() string {
	start, end := "…", "…"
	if !r.Start.IsZero() {
		start = r.Start.Format("2006-01-02")
	}
	if !r.End.IsZero() {
		end = r.End.Format("2006-01-02")
	}
	return start + " .. " + end
}

// StartOfDay returns midnight of the given day in the same timezone
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last nanosecond of the given day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDay parses a day in YYYY-MM-DD or DD/MM/YYYY format at midnight in loc.
// ISO format wins for ambiguous input.
func ParseDay(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)")
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}

	switch {
	case yearOnlyRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing month and day (use format YYYY-MM-DD, e.g., %s-01-15)", input, input)
	case yearMonthRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing day (use format YYYY-MM-DD, e.g., %s-15)", input, input)
	case monthDayRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing year (use format YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-%s)", input, input)
	case dayMonthRe.MatchString(input):
		return time.Time{}, fmt.Errorf("incomplete date '%s': missing year (use format DD/MM/YYYY, e.g., %s/2024)", input, input)
	case tooManyPartsRe.MatchString(input):
		return time.Time{}, fmt.Errorf("invalid date '%s': too many date parts (use format YYYY-MM-DD or DD/MM/YYYY)", input)
	default:
		return time.Time{}, fmt.Errorf("invalid date format '%s' (use YYYY-MM-DD or DD/MM/YYYY, e.g., 2024-01-15 or 15/01/2024)", input)
	}
}

// ParseRange builds a whole-day range from --from/--to/--last values, in loc.
// lastDays covers that many days ending with the day of now and cannot be
// combined with from or to. An empty from or to leaves that side open.
func ParseRange(from, to string, lastDays int, now time.Time, loc *time.Location) (DateRange, error) {
	if lastDays < 0 {
		return DateRange{}, fmt.Errorf("invalid --last %d: must be positive", lastDays)
	}
	if lastDays > 0 && (from != "" || to != "") {
		return DateRange{}, fmt.Errorf("cannot use --last with --from or --to")
	}

	if lastDays > 0 {
		today := now.In(loc)
		return DateRange{
			Start: StartOfDay(today.AddDate(0, 0, -(lastDays - 1))),
			End:   EndOfDay(today),
		}, nil
	}

	var r DateRange
	if from != "" {
		start, err := ParseDay(from, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid --from date: %w", err)
		}
		r.Start = start
	}
	if to != "" {
		end, err := ParseDay(to, loc)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid --to date: %w", err)
		}
		r.End = EndOfDay(end)
	}

	if !r.Start.IsZero() && !r.End.IsZero() && r.Start.After(r.End) {
		return DateRange{}, fmt.Errorf("--from date (%s) is after --to date (%s)",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}

	return r, nil
}
