package reader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/worklog"
	"github.com/xuri/excelize/v2"
)

// NewCSVSource parses delimited text using opts.Delimiter, skipping opts.Offset
// leading rows and reading at most opts.Limit rows after them.
func NewCSVSource(data []byte, opts Options) (Source, error) {
	text, err := ToUTF8(data, "text/csv")
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(normalizeLineEndings(string(text))))
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV input: %w", err)
		}
		rows = append(rows, row)
	}

	return NewSliceSource(tableRecords(rows, opts)), nil
}

// NewXLSXSource reads the configured sheet (or the first sheet) of a workbook
// with the same column mapping as delimited text.
func NewXLSXSource(data []byte, opts Options) (Source, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := opts.Columns.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}

	return NewSliceSource(tableRecords(rows, opts)), nil
}

// tableRecords applies offset, limit and the column mapping to rows.
// Blank rows are skipped; Line is the 1-based row number in the file.
func tableRecords(rows [][]string, opts Options) []Record {
	start := opts.Offset
	if start > len(rows) {
		start = len(rows)
	}
	end := len(rows)
	if opts.Limit > 0 && start+opts.Limit < end {
		end = start + opts.Limit
	}

	var records []Record
	for i := start; i < end; i++ {
		row := rows[i]
		if isBlankRow(row) {
			continue
		}
		records = append(records, Record{
			Line: i + 1,
			Raw:  mapRow(row, opts.Columns),
		})
	}
	return records
}

// mapRow builds a raw record from one table row.
// The issue column feeds the title, the comment column the notes. Without a
// time column, DefaultTime is appended to the date.
func mapRow(row []string, cols config.Columns) worklog.RawRecord {
	date := cell(row, cols.Date)
	if date != "" {
		timeOfDay := cols.DefaultTime
		if cols.Time >= 0 {
			timeOfDay = cell(row, cols.Time)
		}
		if timeOfDay != "" {
			date = date + " " + timeOfDay
		}
	}

	return worklog.RawRecord{
		Title:     cell(row, cols.Issue),
		Notes:     normalizeLineEndings(cell(row, cols.Comment)),
		Duration:  cell(row, cols.Duration),
		StartDate: date,
	}
}

// cell returns the trimmed value at idx, or "" when the row is too short
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
