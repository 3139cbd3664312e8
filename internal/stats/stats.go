package stats

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xolan/jira-worklog-import/internal/duration"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// Statistics contains aggregated counts for one import run
type Statistics struct {
	Processed int
	Submitted int
	DryRun    int
	Rejected  int
	Pending   int
	// Hours is the total time of submitted and dry-run records
	Hours decimal.Decimal
}

// IssueBreakdown contains the accepted time for a single issue key
type IssueBreakdown struct {
	IssueKey   string
	Hours      decimal.Decimal
	EntryCount int
}

// accepted reports whether a record passed validation
func accepted(r worklog.NormalizedRecord) bool {
	return r.Status == worklog.StatusSubmitted || r.Status == worklog.StatusDryRun
}

// CalculateStatistics counts records per status and sums accepted hours
func CalculateStatistics(records []worklog.NormalizedRecord) Statistics {
	stats := Statistics{Hours: decimal.Zero}

	for _, r := range records {
		stats.Processed++
		switch r.Status {
		case worklog.StatusSubmitted:
			stats.Submitted++
		case worklog.StatusDryRun:
			stats.DryRun++
		case worklog.StatusRejected:
			stats.Rejected++
		default:
			stats.Pending++
		}

		if !accepted(r) {
			continue
		}
		if hours, err := duration.ParseHours(r.Hours); err == nil {
			stats.Hours = stats.Hours.Add(hours)
		}
	}

	return stats
}

// CalculateIssueBreakdown groups accepted records by issue key and returns the
// breakdown sorted by total hours (descending), then issue key.
func CalculateIssueBreakdown(records []worklog.NormalizedRecord) []IssueBreakdown {
	issueMap := make(map[string]*IssueBreakdown)

	for _, r := range records {
		if !accepted(r) {
			continue
		}
		hours, err := duration.ParseHours(r.Hours)
		if err != nil {
			continue
		}

		b, ok := issueMap[r.IssueKey]
		if !ok {
			b = &IssueBreakdown{IssueKey: r.IssueKey, Hours: decimal.Zero}
			issueMap[r.IssueKey] = b
		}
		b.Hours = b.Hours.Add(hours)
		b.EntryCount++
	}

	breakdown := make([]IssueBreakdown, 0, len(issueMap))
	for _, b := range issueMap {
		breakdown = append(breakdown, *b)
	}

	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Hours.Equal(breakdown[j].Hours) {
			return breakdown[i].Hours.GreaterThan(breakdown[j].Hours)
		}
		return breakdown[i].IssueKey < breakdown[j].IssueKey
	})

	return breakdown
}
