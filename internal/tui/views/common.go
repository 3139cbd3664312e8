package views

import (
	"fmt"
	"strings"

	"github.com/xolan/jira-worklog-import/internal/service"
	"github.com/xolan/jira-worklog-import/internal/tui/ui"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// RenderOptions configures how records are rendered
type RenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Selected row (-1 for none)
	Offset int // First visible row
	Rows   int // Number of visible rows (0 for all)
}

// Column widths of the record list
const (
	lineWidth      = 5
	statusWidth    = 4
	issueWidth     = 12
	hoursWidth     = 7
	timestampWidth = 19
	minComment     = 20
)

// RenderRecordList renders outcomes as aligned rows:
// line, status, issue key, hours, timestamp and comment
func RenderRecordList(outcomes []service.Outcome, styles ui.Styles, opts RenderOptions) string {
	if len(outcomes) == 0 {
		return ""
	}

	end := len(outcomes)
	if opts.Rows > 0 && opts.Offset+opts.Rows < end {
		end = opts.Offset + opts.Rows
	}

	commentWidth := opts.Width - lineWidth - statusWidth - issueWidth - hoursWidth - timestampWidth - 6
	if commentWidth < minComment {
		commentWidth = minComment
	}

	var b strings.Builder
	for i := opts.Offset; i < end; i++ {
		rec := outcomes[i].Record()

		style := styles.RecordNormal
		if i == opts.Cursor {
			style = styles.RecordSelected
		}

		line := styles.RecordLine.Render(fmt.Sprintf("%*d", lineWidth, rec.Line))
		status := styles.ForStatus(displayStatus(outcomes[i])).Render(fmt.Sprintf("%-*s", statusWidth, statusLabel(outcomes[i])))
		issue := styles.RecordIssue.Render(fmt.Sprintf("%-*s", issueWidth, truncate(rec.IssueKey, issueWidth)))
		hours := styles.RecordHours.Render(fmt.Sprintf("%*s", hoursWidth, truncate(rec.Hours, hoursWidth)))
		ts := styles.RecordTime.Render(fmt.Sprintf("%-*s", timestampWidth, truncate(rec.Timestamp, timestampWidth)))
		comment := truncate(rec.Comment, commentWidth)

		b.WriteString(style.Render(fmt.Sprintf("%s %s %s %s %s %s", line, status, issue, hours, ts, comment)))
		b.WriteString("\n")
	}

	return b.String()
}

// statusLabel is the short status shown in the list
func statusLabel(o service.Outcome) string {
	if _, ok := o.(service.Accepted); ok {
		return "ok"
	}
	return "skip"
}

// displayStatus colors accepted records like dry-run records
func displayStatus(o service.Outcome) worklog.Status {
	if _, ok := o.(service.Accepted); ok {
		return worklog.StatusDryRun
	}
	return worklog.StatusRejected
}

// projectedRecords returns the records as they would be logged by a dry run
func projectedRecords(outcomes []service.Outcome) []worklog.NormalizedRecord {
	records := make([]worklog.NormalizedRecord, len(outcomes))
	for i, o := range outcomes {
		rec := o.Record()
		rec.Status = displayStatus(o)
		records[i] = rec
	}
	return records
}

// countAccepted returns the number of accepted outcomes
func countAccepted(outcomes []service.Outcome) int {
	n := 0
	for _, o := range outcomes {
		if _, ok := o.(service.Accepted); ok {
			n++
		}
	}
	return n
}

// truncate shortens s to width runes, marking the cut with an ellipsis
func truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}

func pluralize(word string, count int) string {
	if count == 1 {
		return word
	}
	return word + "s"
}
