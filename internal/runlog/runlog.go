// Package runlog writes the per-record import log: one pipe-delimited line per
// processed record, appended to a log file and echoed to the console.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// Title is the heading printed in every run banner
const Title = " Jira Worklog Import"

const ruleWidth = 80

// Formatter renders a record for the console
type Formatter func(rec worklog.NormalizedRecord) string

// PlainFormatter renders the record exactly as it is written to the file
func PlainFormatter(rec worklog.NormalizedRecord) string {
	return rec.LogLine()
}

// Banner describes one run at the top of its log section
type Banner struct {
	Input    string
	Endpoint string
	Date     time.Time
}

// Lines renders the banner as log lines
func (b Banner) Lines() []string {
	rule := strings.Repeat("=", ruleWidth)
	return []string{
		"",
		rule,
		Title,
		" Input: " + b.Input,
		" Endpoint: " + b.Endpoint,
		" Date: " + b.Date.Format(time.RFC3339),
		rule,
	}
}

// Writer appends log lines to a file and echoes them to a console writer.
// Each write opens the file in append mode, so concurrent runs interleave
// whole lines.
type Writer struct {
	path    string
	console io.Writer
	format  Formatter
}

// Open prepares the log file at path, creating its directory.
// console may be nil to disable echoing; format defaults to PlainFormatter.
func Open(path string, console io.Writer, format Formatter) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	if format == nil {
		format = PlainFormatter
	}
	return &Writer{path: path, console: console, format: format}, nil
}

// Path returns the log file path
func (w *Writer) Path() string {
	return w.path
}

// Banner writes the run banner
func (w *Writer) Banner(b Banner) error {
	lines := b.Lines()
	w.echo(strings.Join(lines, "\n"))
	return w.appendLines(lines...)
}

// Write logs one processed record
func (w *Writer) Write(rec worklog.NormalizedRecord) error {
	w.echo(w.format(rec))
	return w.appendLines(rec.LogLine())
}

// WriteText logs free text, e.g. the end-of-run summary
func (w *Writer) WriteText(text string) error {
	w.echo(text)
	return w.appendLines(strings.Split(text, "\n")...)
}

func (w *Writer) echo(s string) {
	if w.console != nil {
		_, _ = fmt.Fprintln(w.console, s)
	}
}

func (w *Writer) appendLines(lines ...string) error {
	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, err = file.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}
