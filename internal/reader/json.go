package reader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// flexString accepts a JSON string or number; some exporters write the
// duration as decimal hours.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("invalid number %s", data)
	}
	*f = flexString(n.String())
	return nil
}

// jsonRecord mirrors one object of the export array
type jsonRecord struct {
	Project   flexString `json:"project"`
	Title     flexString `json:"title"`
	Notes     flexString `json:"notes"`
	Comment   flexString `json:"comment"`
	Duration  flexString `json:"duration"`
	StartDate flexString `json:"startDate"`
}

// NewJSONSource parses a JSON array of export objects.
// Each object may carry project, title, notes (or comment), duration and
// startDate. Unknown fields are ignored.
func NewJSONSource(data []byte) (Source, error) {
	text, err := ToUTF8(data, "application/json")
	if err != nil {
		return nil, err
	}

	var items []jsonRecord
	if err := json.Unmarshal([]byte(normalizeLineEndings(string(text))), &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON input: %w", err)
	}

	records := make([]Record, 0, len(items))
	for i, item := range items {
		notes := string(item.Notes)
		if notes == "" {
			notes = string(item.Comment)
		}
		records = append(records, Record{
			Line: i + 1,
			Raw: worklog.RawRecord{
				Project:   normalizeLineEndings(string(item.Project)),
				Title:     normalizeLineEndings(string(item.Title)),
				Notes:     normalizeLineEndings(notes),
				Duration:  string(item.Duration),
				StartDate: string(item.StartDate),
			},
		})
	}

	return NewSliceSource(records), nil
}
