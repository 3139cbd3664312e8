package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/jira-worklog-import/internal/worklog"
)

func sampleRecord() worklog.NormalizedRecord {
	return worklog.NormalizedRecord{
		Line:          3,
		Status:        worklog.StatusSubmitted,
		StatusMessage: "logged (10042)",
		IssueKey:      "BSP-9",
		Hours:         "1.5h",
		Timestamp:     "2024-03-01 09:15:00",
		Comment:       `Timesheets\nand review`,
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "files", "nested", "import.log")

	w, err := Open(path, nil, nil)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if w.Path() != path {
		t.Errorf("Path() = %q, expected %q", w.Path(), path)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Errorf("expected log directory to exist: %v", err)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open("", nil, nil); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.log")
	var console bytes.Buffer

	w, err := Open(path, &console, func(rec worklog.NormalizedRecord) string {
		return "colored:" + rec.IssueKey
	})
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}

	if err := w.Write(sampleRecord()); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	expected := `3 | submitted | logged (10042) | BSP-9 | 1.5h | 2024-03-01 09:15:00 | Timesheets\nand review` + "\n"
	if string(data) != expected {
		t.Errorf("log file = %q, expected %q", string(data), expected)
	}
	if console.String() != "colored:BSP-9\n" {
		t.Errorf("console = %q, expected formatted line", console.String())
	}
}

func TestWriter_AppendsAcrossWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.log")

	for i := 0; i < 2; i++ {
		w, err := Open(path, nil, nil)
		if err != nil {
			t.Fatalf("Open() unexpected error: %v", err)
		}
		if err := w.Write(sampleRecord()); err != nil {
			t.Fatalf("Write() unexpected error: %v", err)
		}
	}

	data, _ := os.ReadFile(path)
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("expected 2 lines, got %d: %q", got, string(data))
	}
}

func TestWriter_Banner(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.log")
	var console bytes.Buffer
	w, _ := Open(path, &console, nil)

	date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("", -5*3600))
	err := w.Banner(Banner{Input: "/data/export.json", Endpoint: "https://jira.example.com", Date: date})
	if err != nil {
		t.Fatalf("Banner() unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	content := string(data)
	for _, want := range []string{
		strings.Repeat("=", 80),
		Title + "\n",
		" Input: /data/export.json",
		" Endpoint: https://jira.example.com",
		" Date: 2024-03-01T09:00:00-05:00",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("banner missing %q in %q", want, content)
		}
	}
	if !strings.HasPrefix(content, "\n") {
		t.Error("banner should start with an empty line")
	}
	if !strings.Contains(console.String(), Title) {
		t.Errorf("banner not echoed: %q", console.String())
	}
}

func TestWriter_WriteText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.log")
	w, _ := Open(path, nil, nil)

	if err := w.WriteText("Processed: 2\nSubmitted: 1"); err != nil {
		t.Fatalf("WriteText() unexpected error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "Processed: 2\nSubmitted: 1\n" {
		t.Errorf("log file = %q", string(data))
	}
}

func TestWriter_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// a directory in place of the log file
	path := filepath.Join(dir, "import.log")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatal(err)
	}

	w, err := Open(path, nil, nil)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	if err := w.Write(sampleRecord()); err == nil {
		t.Error("expected error writing to a directory")
	}
}
