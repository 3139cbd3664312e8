package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/jira-worklog-import/internal/worklog"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    worklog.NormalizedRecord
		wantErr bool
	}{
		{
			name: "submitted record",
			line: "3 | submitted | logged (10042) | BSP-9 | 1.5h | 2024-03-01 09:15:00 | Timesheets",
			want: worklog.NormalizedRecord{
				Line: 3, Status: worklog.StatusSubmitted, StatusMessage: "logged (10042)",
				IssueKey: "BSP-9", Hours: "1.5h", Timestamp: "2024-03-01 09:15:00", Comment: "Timesheets",
			},
		},
		{
			name: "comment containing the separator",
			line: "1 | dry_run | dry-run | AB-1 | 0.25h | 2024-03-01 12:00:00 | a | b",
			want: worklog.NormalizedRecord{
				Line: 1, Status: worklog.StatusDryRun, StatusMessage: "dry-run",
				IssueKey: "AB-1", Hours: "0.25h", Timestamp: "2024-03-01 12:00:00", Comment: "a | b",
			},
		},
		{
			name: "empty trailing comment",
			line: "2 | rejected | skipped: x | ⭕ t | 1h | 2024-03-01 12:00:00 | ",
			want: worklog.NormalizedRecord{
				Line: 2, Status: worklog.StatusRejected, StatusMessage: "skipped: x",
				IssueKey: "⭕ t", Hours: "1h", Timestamp: "2024-03-01 12:00:00", Comment: "",
			},
		},
		{name: "too few fields", line: "1 | submitted | x", wantErr: true},
		{name: "bad line number", line: "1a | submitted | a | b | c | d | e", wantErr: true},
		{name: "unknown status", line: "1 | lost | a | b | c | d | e", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLine(tt.line)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseLine(%q) expected error", tt.line)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLine(%q) unexpected error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseLine(%q) = %+v, expected %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseLine_RoundTrip(t *testing.T) {
	rec := sampleRecord()
	got, err := ParseLine(rec.LogLine())
	if err != nil {
		t.Fatalf("ParseLine() unexpected error: %v", err)
	}
	if got != rec {
		t.Errorf("round trip = %+v, expected %+v", got, rec)
	}
}

func TestParseLine_RoundTripWithPipes(t *testing.T) {
	rec := worklog.NormalizedRecord{
		Line:          7,
		Status:        worklog.StatusRejected,
		StatusMessage: "api error: Worklog must not be null | started is invalid",
		IssueKey:      worklog.ErrorMarker + "Ops | Support",
		Hours:         "2.5h",
		Timestamp:     "2024-03-01 09:15:00",
		Comment:       "left | right",
	}

	got, err := ParseLine(rec.LogLine())
	if err != nil {
		t.Fatalf("ParseLine() unexpected error: %v", err)
	}
	if got != rec {
		t.Errorf("round trip = %+v, expected %+v", got, rec)
	}
}

func TestReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.log")
	w, _ := Open(path, nil, nil)

	for run := 0; run < 2; run++ {
		if err := w.Banner(Banner{Input: "in.json", Endpoint: "https://jira", Date: time.Now()}); err != nil {
			t.Fatal(err)
		}
		if err := w.Write(sampleRecord()); err != nil {
			t.Fatal(err)
		}
		if err := w.WriteText("Processed: 1"); err != nil {
			t.Fatal(err)
		}
	}
	// a corrupted record line
	f, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	_, _ = f.WriteString("9 | submitted | truncated\n")
	_ = f.Close()

	result, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords() unexpected error: %v", err)
	}
	if result.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", result.Runs)
	}
	if len(result.Records) != 2 {
		t.Errorf("Records = %d, expected 2", len(result.Records))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %d, expected 1", len(result.Warnings))
	}
	if !strings.Contains(result.Warnings[0].Content, "truncated") {
		t.Errorf("warning content = %q", result.Warnings[0].Content)
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	result, err := ReadRecords(filepath.Join(t.TempDir(), "missing.log"))
	if err != nil {
		t.Fatalf("ReadRecords() unexpected error: %v", err)
	}
	if len(result.Records) != 0 || result.Runs != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}
