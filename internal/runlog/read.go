package runlog

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/xolan/jira-worklog-import/internal/worklog"
)

const fieldCount = 7

// ParseWarning describes a record line that could not be parsed
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the line
	Error      string
}

// ReadResult contains the records of a log file, the number of run banners
// seen and warnings about malformed record lines
type ReadResult struct {
	Records  []worklog.NormalizedRecord
	Runs     int
	Warnings []ParseWarning
}

// ParseLine parses one record line written by Writer.Write
func ParseLine(line string) (worklog.NormalizedRecord, error) {
	parts := strings.SplitN(line, " | ", fieldCount)
	if len(parts) != fieldCount {
		return worklog.NormalizedRecord{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(parts))
	}

	n, err := strconv.Atoi(parts[0])
	if err != nil {
		return worklog.NormalizedRecord{}, fmt.Errorf("invalid line number %q", parts[0])
	}

	status := worklog.Status(parts[1])
	switch status {
	case worklog.StatusPending, worklog.StatusRejected, worklog.StatusDryRun, worklog.StatusSubmitted:
	default:
		return worklog.NormalizedRecord{}, fmt.Errorf("unknown status %q", parts[1])
	}

	return worklog.NormalizedRecord{
		Line:          n,
		Status:        status,
		StatusMessage: worklog.UnescapePipes(parts[2]),
		IssueKey:      worklog.UnescapePipes(parts[3]),
		Hours:         worklog.UnescapePipes(parts[4]),
		Timestamp:     worklog.UnescapePipes(parts[5]),
		Comment:       parts[6],
	}, nil
}

// ReadRecords reads every record line of the log file at path.
// Banner and summary lines are skipped; a record line is one starting with a
// digit. A missing file yields an empty result.
func ReadRecords(path string) (ReadResult, error) {
	result := ReadResult{
		Records:  []worklog.NormalizedRecord{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		content := scanner.Text()

		if content == Title {
			result.Runs++
			continue
		}
		if content == "" || !unicode.IsDigit(rune(content[0])) {
			continue
		}

		rec, err := ParseLine(content)
		if err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    content,
				Error:      err.Error(),
			})
			continue
		}
		result.Records = append(result.Records, rec)
	}

	return result, scanner.Err()
}
