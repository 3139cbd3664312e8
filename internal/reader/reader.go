// Package reader iterates time-tracking export files (JSON arrays, delimited
// text tables and XLSX workbooks) as raw work-log records.
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// Format identifies an input container format
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for unknown formats or file extensions
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Record is one raw record and its 1-based position in the input
// (array index for JSON, row number for tables)
type Record struct {
	Line int
	Raw  worklog.RawRecord
}

// Source yields records in input order. Next returns io.EOF when exhausted.
type Source interface {
	Next() (Record, error)
	Close() error
}

// Options controls how table input is read
type Options struct {
	Format    Format
	Delimiter rune
	// Offset is the number of leading rows skipped (header rows)
	Offset int
	// Limit caps the number of rows read after Offset; 0 means no limit
	Limit   int
	Columns config.Columns
}

// OptionsFromConfig builds reader options from the resolved configuration
func OptionsFromConfig(cfg config.Config, format Format) Options {
	return Options{
		Format:    format,
		Delimiter: cfg.Delimiter(),
		Offset:    cfg.Offset,
		Limit:     cfg.Limit,
		Columns:   cfg.Columns,
	}
}

// ParseFormat validates a --format flag value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	case "tsv", "txt":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q (use auto, json, csv or xlsx)", ErrUnsupportedFormat, s)
	}
}

// DetectFormat picks the format from the file extension.
// .json is JSON, .csv/.tsv/.txt are delimited tables and .xlsx is a workbook.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".csv", ".tsv", ".txt":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Open reads the file at path and returns a Source over its records.
// The whole container is parsed up front: a malformed file fails here, before
// any record is processed.
func Open(path string, opts Options) (Source, error) {
	format := opts.Format
	if format == "" || format == FormatAuto {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	switch format {
	case FormatJSON:
		return NewJSONSource(data)
	case FormatCSV:
		return NewCSVSource(data, opts)
	case FormatXLSX:
		return NewXLSXSource(data, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// sliceSource serves records that were parsed up front
type sliceSource struct {
	records []Record
	pos     int
}

func (s *sliceSource) Next() (Record, error) {
	if s.pos >= len(s.records) {
		return Record{}, io.EOF
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

func (s *sliceSource) Close() error {
	return nil
}

// NewSliceSource returns a Source over records, in order
func NewSliceSource(records []Record) Source {
	return &sliceSource{records: records}
}
