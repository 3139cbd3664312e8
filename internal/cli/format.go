// Package cli provides the CLI presentation layer of the importer.
// It handles console formatting of record lines, summaries and configuration.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/xolan/jira-worklog-import/internal/duration"
	"github.com/xolan/jira-worklog-import/internal/runlog"
	"github.com/xolan/jira-worklog-import/internal/stats"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// Status colors
var (
	submittedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	dryRunStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	rejectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headingStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// StatusIcon returns the marker shown in front of a console record line
func StatusIcon(s worklog.Status) string {
	switch s {
	case worklog.StatusSubmitted:
		return "🟢"
	case worklog.StatusDryRun:
		return "🕓"
	case worklog.StatusRejected:
		return "🔴"
	default:
		return "🟠"
	}
}

// StatusStyle returns the console color for a status
func StatusStyle(s worklog.Status) lipgloss.Style {
	switch s {
	case worklog.StatusSubmitted:
		return submittedStyle
	case worklog.StatusDryRun:
		return dryRunStyle
	case worklog.StatusRejected:
		return rejectedStyle
	default:
		return pendingStyle
	}
}

// FormatRecord renders a record line for the console: the status icon
// followed by the log line in the status color
func FormatRecord(rec worklog.NormalizedRecord) string {
	return StatusIcon(rec.Status) + " " + StatusStyle(rec.Status).Render(rec.LogLine())
}

// FormatHours renders a decimal hour amount the way Jira expects it, e.g. "1.5h"
func FormatHours(h decimal.Decimal) string {
	return h.String() + duration.Unit
}

// Pluralize returns the singular or plural form of a word based on count
func Pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}

// FormatSummary renders the end-of-run summary. Lines never start with a
// digit, so they are not mistaken for record lines when the log is read back.
func FormatSummary(s stats.Statistics, issues []stats.IssueBreakdown, dryRun bool) string {
	var b strings.Builder

	title := "Summary"
	if dryRun {
		title = "Summary (dry run)"
	}
	b.WriteString(strings.Repeat("-", 80) + "\n")
	b.WriteString(" " + title + "\n")
	fmt.Fprintf(&b, " Processed: %d %s\n", s.Processed, Pluralize("record", s.Processed))
	if dryRun {
		fmt.Fprintf(&b, " Validated: %d\n", s.DryRun)
	} else {
		fmt.Fprintf(&b, " Submitted: %d\n", s.Submitted)
	}
	fmt.Fprintf(&b, " Rejected:  %d\n", s.Rejected)
	if s.Pending > 0 {
		fmt.Fprintf(&b, " Pending:   %d\n", s.Pending)
	}
	fmt.Fprintf(&b, " Hours:     %s", FormatHours(s.Hours))

	for _, issue := range issues {
		fmt.Fprintf(&b, "\n   %-14s %8s  (%d %s)", issue.IssueKey, FormatHours(issue.Hours),
			issue.EntryCount, Pluralize("record", issue.EntryCount))
	}

	return b.String()
}

// StyleSummary colors a summary for the console
func StyleSummary(summary string) string {
	lines := strings.Split(summary, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, " Summary"):
			lines[i] = headingStyle.Render(line)
		case strings.HasPrefix(line, "---"):
			lines[i] = mutedStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatParseWarning formats a run log warning into a human-readable string
func FormatParseWarning(warning runlog.ParseWarning) string {
	content := warning.Content
	if runes := []rune(content); len(runes) > 50 {
		content = string(runes[:47]) + "..."
	}
	return fmt.Sprintf("  Line %d: %s (error: %s)", warning.LineNumber, content, warning.Error)
}
