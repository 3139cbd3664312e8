package worklog

import "testing"

func TestLogLine(t *testing.T) {
	r := NormalizedRecord{
		Line:          3,
		Status:        StatusDryRun,
		StatusMessage: "dry-run",
		IssueKey:      "BSP-9",
		Hours:         "1.5h",
		Timestamp:     "2024-03-01 09:00:00",
		Comment:       `Timesheets\nsecond line`,
	}

	expected := `3 | dry_run | dry-run | BSP-9 | 1.5h | 2024-03-01 09:00:00 | Timesheets\nsecond line`
	if got := r.LogLine(); got != expected {
		t.Errorf("LogLine() = %q, expected %q", got, expected)
	}
}

func TestLogLine_EmptyFields(t *testing.T) {
	r := NormalizedRecord{Line: 1, Status: StatusPending}

	expected := "1 | pending |  |  |  |  | "
	if got := r.LogLine(); got != expected {
		t.Errorf("LogLine() = %q, expected %q", got, expected)
	}
}

func TestLogLine_PipesInLeadingFields(t *testing.T) {
	r := NormalizedRecord{
		Line:          4,
		Status:        StatusRejected,
		StatusMessage: "api error: field a | b",
		IssueKey:      ErrorMarker + "Ops | Support",
		Hours:         "1h",
		Timestamp:     "2024-03-01 12:00:00",
		Comment:       "left | right",
	}

	expected := `4 | rejected | api error: field a \| b | ⭕ Ops \| Support | 1h | 2024-03-01 12:00:00 | left | right`
	if got := r.LogLine(); got != expected {
		t.Errorf("LogLine() = %q, expected %q", got, expected)
	}
}

func TestUnescapePipes_ReversesEscape(t *testing.T) {
	inputs := []string{"a | b", "|", "||", "plain", ""}

	for _, input := range inputs {
		if got := UnescapePipes(EscapePipes(input)); got != input {
			t.Errorf("UnescapePipes(EscapePipes(%q)) = %q", input, got)
		}
	}
}

func TestEscapeNewlines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no newline", "fix bug", "fix bug"},
		{"single newline", "line one\nline two", `line one\nline two`},
		{"crlf", "line one\r\nline two", `line one\nline two`},
		{"trailing newline", "done\n", `done\n`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeNewlines(tt.input); got != tt.expected {
				t.Errorf("EscapeNewlines(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUnescapeNewlines_ReversesEscape(t *testing.T) {
	inputs := []string{"a\nb", "a\n\nb", "plain", "\n"}

	for _, input := range inputs {
		if got := UnescapeNewlines(EscapeNewlines(input)); got != input {
			t.Errorf("UnescapeNewlines(EscapeNewlines(%q)) = %q", input, got)
		}
	}
}
