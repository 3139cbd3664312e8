package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/xolan/jira-worklog-import/internal/logging"
	"github.com/xolan/jira-worklog-import/internal/reader"
	"github.com/xolan/jira-worklog-import/internal/stats"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// Submitter creates a work-log entry in the remote tracker and returns its id
type Submitter interface {
	AddWorklog(ctx context.Context, w worklog.Worklog) (string, error)
}

// RecordSource yields raw records in input order and io.EOF when exhausted
type RecordSource interface {
	Next() (reader.Record, error)
}

// RecordSink receives exactly one normalized record per processed input record
type RecordSink interface {
	Write(rec worklog.NormalizedRecord) error
}

// ImportResult contains every processed record and the run summary
type ImportResult struct {
	Records    []worklog.NormalizedRecord
	Statistics stats.Statistics
	Issues     []stats.IssueBreakdown
}

// ImportService drives an import: it normalizes each record, submits the
// accepted ones (unless dry-run) and writes one log line per record.
// Records are processed strictly one after another.
type ImportService struct {
	normalizer *Normalizer
	submitter  Submitter
	sink       RecordSink
	logger     *log.Logger
	dryRun     bool
}

// NewImportService creates a new ImportService. submitter may be nil for dry runs.
func NewImportService(normalizer *Normalizer, submitter Submitter, sink RecordSink, logger *log.Logger, dryRun bool) *ImportService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ImportService{
		normalizer: normalizer,
		submitter:  submitter,
		sink:       sink,
		logger:     logger,
		dryRun:     dryRun,
	}
}

// DryRun reports whether submissions are suppressed
func (s *ImportService) DryRun() bool {
	return s.dryRun
}

// Run processes every record of src.
// Per-record failures are logged and do not stop the run. A source read error
// (wrapped in ErrInputUnreadable) or a sink write error aborts the run; the
// records processed so far are still returned.
func (s *ImportService) Run(ctx context.Context, src RecordSource) (*ImportResult, error) {
	if !s.dryRun && s.submitter == nil {
		return nil, errors.New("no submitter configured for a non dry-run import")
	}

	result := &ImportResult{}
	defer func() {
		result.Statistics = stats.CalculateStatistics(result.Records)
		result.Issues = stats.CalculateIssueBreakdown(result.Records)
	}()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return result, nil
		}
		if err != nil {
			return result, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
		}

		entry := s.Process(ctx, rec.Line, rec.Raw)
		result.Records = append(result.Records, entry)

		if err := s.sink.Write(entry); err != nil {
			return result, fmt.Errorf("failed to write log line %d: %w", entry.Line, err)
		}
	}
}

// Process normalizes a single record and, when accepted, submits it.
// It never fails: every problem is reflected in the returned record's status.
func (s *ImportService) Process(ctx context.Context, line int, raw worklog.RawRecord) worklog.NormalizedRecord {
	s.logger.Debug("raw record", "line", line, "project", raw.Project, "title", raw.Title,
		"notes", raw.Notes, "duration", raw.Duration, "startDate", raw.StartDate)

	outcome := s.normalizer.Normalize(line, raw)

	switch o := outcome.(type) {
	case Rejected:
		s.logger.Debug("record rejected", "line", line, "err", o.Err)
		return o.Entry
	case Accepted:
		for _, w := range o.Warnings {
			s.logger.Warn(w, "line", line, "issue", o.Entry.IssueKey)
		}
		return s.submit(ctx, o)
	default:
		panic(fmt.Sprintf("unexpected outcome %T", outcome))
	}
}

// Preview normalizes every record of src without submitting or logging them
func (s *ImportService) Preview(src RecordSource) ([]Outcome, error) {
	var outcomes []Outcome
	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			return outcomes, nil
		}
		if err != nil {
			return outcomes, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
		}
		outcomes = append(outcomes, s.normalizer.Normalize(rec.Line, rec.Raw))
	}
}

// submit hands an accepted record to the submitter and records the result
func (s *ImportService) submit(ctx context.Context, a Accepted) worklog.NormalizedRecord {
	entry := a.Entry
	note := ""
	if len(a.Warnings) > 0 {
		note = " (" + joinWarnings(a.Warnings) + ")"
	}

	if s.dryRun {
		entry.Status = worklog.StatusDryRun
		entry.StatusMessage = "dry-run" + note
		return entry
	}

	id, err := s.submitter.AddWorklog(ctx, a.Worklog)
	if err != nil {
		s.logger.Error("worklog not created", "line", entry.Line, "issue", entry.IssueKey, "err", fmt.Errorf("%w: %w", ErrSubmission, err))
		entry.Status = worklog.StatusRejected
		entry.StatusMessage = "api error: " + joinMessages([]error{err})
		return entry
	}

	s.logger.Debug("worklog created", "line", entry.Line, "issue", entry.IssueKey, "id", id)
	entry.Status = worklog.StatusSubmitted
	entry.StatusMessage = fmt.Sprintf("logged (%s)", id) + note
	return entry
}

func joinWarnings(warnings []string) string {
	return strings.Join(warnings, "; ")
}
