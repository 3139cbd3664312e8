package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/duration"
	"github.com/xolan/jira-worklog-import/internal/extract"
	"github.com/xolan/jira-worklog-import/internal/timeutil"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// Placeholder text written into fields that could not be derived
const (
	CommentRequired = worklog.ErrorMarker + "A worklog comment is required."

	statusValidated = "validated"
	statusSkipped   = "skipped"
)

// Outcome is the result of normalizing one raw record: either Accepted or Rejected.
type Outcome interface {
	// Record returns the log entry for the record
	Record() worklog.NormalizedRecord
	isOutcome()
}

// Accepted is a record that passed validation and may be submitted
type Accepted struct {
	Entry   worklog.NormalizedRecord
	Worklog worklog.Worklog
	// Warnings are non-fatal observations (e.g., a converted UTC offset)
	Warnings []string
}

// Rejected is a record that failed validation and is never submitted.
// Err joins one error per failed field, each wrapping a sentinel
// (ErrExtraction, ErrDateParse or ErrDurationParse).
type Rejected struct {
	Entry worklog.NormalizedRecord
	Err   error
}

func (a Accepted) Record() worklog.NormalizedRecord { return a.Entry }
func (r Rejected) Record() worklog.NormalizedRecord { return r.Entry }

func (Accepted) isOutcome() {}
func (Rejected) isOutcome() {}

// Normalizer turns raw export records into validated work-log entries
type Normalizer struct {
	format       string
	location     *time.Location
	offsetPolicy string
}

// NewNormalizer creates a Normalizer for the given date format, timezone and
// offset policy (config.OffsetPolicyConvert or config.OffsetPolicyReject).
func NewNormalizer(format, timezone, offsetPolicy string) (*Normalizer, error) {
	loc, err := timeutil.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	if offsetPolicy == "" {
		offsetPolicy = config.OffsetPolicyConvert
	}
	if offsetPolicy != config.OffsetPolicyConvert && offsetPolicy != config.OffsetPolicyReject {
		return nil, fmt.Errorf("unknown offset policy %q", offsetPolicy)
	}
	if format == "" {
		format = timeutil.DefaultFormat
	}
	return &Normalizer{format: format, location: loc, offsetPolicy: offsetPolicy}, nil
}

// NewNormalizerFromConfig creates a Normalizer from the resolved configuration
func NewNormalizerFromConfig(cfg config.Config) (*Normalizer, error) {
	return NewNormalizer(cfg.DateFormat, cfg.DateTimezone, cfg.OffsetPolicy)
}

// Normalize validates raw, the record at 1-based position line.
//
// Field derivation:
//   - empty notes fall back to title, then project
//   - issue key: first key found in title, project, notes
//   - comment: first non-empty remainder of notes, title, project after
//     stripping a leading issue key
//   - timestamp: strict parse of the start date in the configured timezone
//   - hours: duration rounded up to the next quarter hour
//
// Every field is derived even after an earlier one failed, so the log line
// shows all problems of the record at once.
func (n *Normalizer) Normalize(line int, raw worklog.RawRecord) Outcome {
	entry := worklog.NormalizedRecord{
		Line:   line,
		Status: worklog.StatusPending,
	}
	var errs []error
	var warnings []string

	notes := raw.Notes
	if notes == "" {
		notes = extract.FirstNonEmpty(identity, raw.Title, raw.Project)
	}

	entry.IssueKey = extract.FirstNonEmpty(extract.IssueKeyExtractor, raw.Title, raw.Project, notes)
	if entry.IssueKey == "" {
		entry.IssueKey = worklog.ErrorMarker + worklog.EscapeNewlines(raw.Title)
		errs = append(errs, fmt.Errorf("%w: no issue key in title, project or notes", ErrExtraction))
	}

	comment := extract.FirstNonEmpty(nonBlankComment, notes, raw.Title, raw.Project)
	if comment == "" {
		entry.Comment = CommentRequired
		errs = append(errs, fmt.Errorf("%w: a worklog comment is required", ErrExtraction))
	} else {
		entry.Comment = worklog.EscapeNewlines(comment)
	}

	ts, err := timeutil.ParseTimestampIn(raw.StartDate, n.format, n.location)
	switch {
	case err != nil:
		entry.Timestamp = fmt.Sprintf("%s%s fmt: '%s'", worklog.ErrorMarker, raw.StartDate, n.format)
		errs = append(errs, fmt.Errorf("%w: %w", ErrDateParse, err))
	case ts.OffsetMismatch && n.offsetPolicy == config.OffsetPolicyReject:
		entry.Timestamp = fmt.Sprintf("%s%s offset %s != %s", worklog.ErrorMarker, raw.StartDate, ts.SourceOffset, n.location)
		errs = append(errs, fmt.Errorf("%w: offset %s does not match timezone %s", ErrDateParse, ts.SourceOffset, n.location))
	default:
		entry.Timestamp = ts.Canonical
		if ts.OffsetMismatch {
			warnings = append(warnings, fmt.Sprintf("offset %s converted to %s", ts.SourceOffset, n.location))
		}
	}

	hours, err := duration.Format(raw.Duration)
	if err != nil {
		entry.Hours = worklog.ErrorMarker + raw.Duration
		errs = append(errs, fmt.Errorf("%w: %w", ErrDurationParse, err))
	} else {
		entry.Hours = hours
	}

	if len(errs) > 0 {
		entry.Status = worklog.StatusRejected
		entry.StatusMessage = statusSkipped + ": " + joinMessages(errs)
		return Rejected{Entry: entry, Err: errors.Join(errs...)}
	}

	entry.StatusMessage = statusValidated
	if len(warnings) > 0 {
		entry.StatusMessage += "; " + strings.Join(warnings, "; ")
	}

	return Accepted{
		Entry: entry,
		Worklog: worklog.Worklog{
			IssueKey:  entry.IssueKey,
			Comment:   worklog.UnescapeNewlines(entry.Comment),
			Started:   ts.Time,
			TimeSpent: hours,
		},
		Warnings: warnings,
	}
}

// identity is the extractor used for the notes fallback: any non-empty field wins
func identity(text string) string {
	return text
}

// nonBlankComment strips the issue key prefix and reports a whitespace-only
// remainder as empty, so the next field is tried. The remainder is kept as is.
func nonBlankComment(text string) string {
	comment := extract.Comment(text)
	if strings.TrimSpace(comment) == "" {
		return ""
	}
	return comment
}

// joinMessages renders errs on one line, separated by "; "
func joinMessages(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = strings.ReplaceAll(err.Error(), "\n", " ")
	}
	return strings.Join(msgs, "; ")
}
