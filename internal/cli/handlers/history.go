package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/xolan/jira-worklog-import/internal/cli"
	"github.com/xolan/jira-worklog-import/internal/runlog"
	"github.com/xolan/jira-worklog-import/internal/stats"
	"github.com/xolan/jira-worklog-import/internal/timeutil"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// ShowHistory summarizes the records logged in the file at path whose work-log
// timestamp falls inside period, read in the configured timezone
func ShowHistory(deps *cli.Deps, path string, period timeutil.DateRange) {
	result, err := runlog.ReadRecords(path)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the run log")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the log file is readable: %s\n", path)
		deps.Exit(1)
		return
	}

	records := filterByPeriod(result.Records, period, deps.Config.DateTimezone)
	if len(records) == 0 {
		if period.IsZero() {
			_, _ = fmt.Fprintf(deps.Stdout, "No records logged in %s\n", path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "No records logged in %s for %s\n", path, period)
		}
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Run log: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Runs:    %d %s\n", result.Runs, cli.Pluralize("run", result.Runs))
	if !period.IsZero() {
		_, _ = fmt.Fprintf(deps.Stdout, "Period:  %s\n", period)
	}

	s := stats.CalculateStatistics(records)
	issues := stats.CalculateIssueBreakdown(records)
	_, _ = fmt.Fprintln(deps.Stdout, cli.StyleSummary(cli.FormatSummary(s, issues, false)))
	if s.DryRun > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, " Dry run:   %d (hours included above)\n", s.DryRun)
	}

	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintln(deps.Stderr)
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: %d malformed %s skipped\n",
			len(result.Warnings), cli.Pluralize("line", len(result.Warnings)))
		for _, w := range result.Warnings {
			_, _ = fmt.Fprintln(deps.Stderr, cli.FormatParseWarning(w))
		}
	}
}

// filterByPeriod keeps the records whose timestamp falls inside period.
// Rejected records without a parseable timestamp only survive an open period.
func filterByPeriod(records []worklog.NormalizedRecord, period timeutil.DateRange, timezone string) []worklog.NormalizedRecord {
	if period.IsZero() {
		return records
	}
	loc, err := timeutil.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	var kept []worklog.NormalizedRecord
	for _, rec := range records {
		if period.ContainsCanonical(rec.Timestamp, loc) {
			kept = append(kept, rec)
		}
	}
	return kept
}
