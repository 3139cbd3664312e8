package worklog

import (
	"strconv"
	"strings"
	"time"
)

// Status is the processing state of a single imported record
type Status string

const (
	StatusPending   Status = "pending"
	StatusRejected  Status = "rejected"
	StatusDryRun    Status = "dry_run"
	StatusSubmitted Status = "submitted"
)

// ErrorMarker prefixes every placeholder written in place of a field that could not be derived
const ErrorMarker = "⭕ "

// RawRecord is one input row or object, exactly as read from the export file
type RawRecord struct {
	Project   string `json:"project"`
	Title     string `json:"title"`
	Notes     string `json:"notes"`
	Duration  string `json:"duration"`
	StartDate string `json:"startDate"`
}

// NormalizedRecord is the per-record result written to the run log
type NormalizedRecord struct {
	Line          int    `json:"line"`
	Status        Status `json:"status"`
	StatusMessage string `json:"status_message"`
	IssueKey      string `json:"issue_key"`
	Hours         string `json:"hours"`
	Timestamp     string `json:"timestamp"`
	Comment       string `json:"comment"`
}

// Worklog is the payload handed to the submission collaborator.
// It only exists for records that passed validation.
type Worklog struct {
	IssueKey  string
	Comment   string
	Started   time.Time
	TimeSpent string
}

// LogLine renders the record as a single pipe-delimited log line.
// Field order: line | status | status_message | issue_key | hours | timestamp | comment
// Pipes in every field but the trailing comment are written as `\|`.
func (r NormalizedRecord) LogLine() string {
	return strings.Join([]string{
		strconv.Itoa(r.Line),
		string(r.Status),
		EscapePipes(r.StatusMessage),
		EscapePipes(r.IssueKey),
		EscapePipes(r.Hours),
		EscapePipes(r.Timestamp),
		r.Comment,
	}, " | ")
}

// EscapePipes writes each `|` in s as `\|`, so s never contains the field separator
func EscapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// UnescapePipes reverses EscapePipes
func UnescapePipes(s string) string {
	return strings.ReplaceAll(s, `\|`, "|")
}

// EscapeNewlines replaces literal newlines with the two-character sequence `\n`
// so a comment always fits on one log line. CRLF pairs collapse to a single escape.
func EscapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", `\n`)
}

// UnescapeNewlines reverses EscapeNewlines
func UnescapeNewlines(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}
