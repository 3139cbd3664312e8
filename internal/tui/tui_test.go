package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/jira-worklog-import/internal/service"
	"github.com/xolan/jira-worklog-import/internal/tui/ui"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

func testOutcomes() []service.Outcome {
	return []service.Outcome{
		service.Accepted{Entry: worklog.NormalizedRecord{
			Line: 2, Status: worklog.StatusPending, StatusMessage: "validated",
			IssueKey: "BSP-9", Hours: "1.5h", Timestamp: "2024-03-01 09:15:00", Comment: "Timesheets",
		}},
		service.Rejected{Entry: worklog.NormalizedRecord{
			Line: 3, Status: worklog.StatusRejected, StatusMessage: "skipped: extraction failed",
			IssueKey: "⭕ Lunch", Hours: "1h", Timestamp: "2024-03-01 12:00:00", Comment: "Lunch",
		}, Err: errors.New("extraction failed")},
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model, cmd
}

func TestNew(t *testing.T) {
	model := New(testOutcomes(), Options{Input: "export.json"})

	if model.activeTab != TabRecords {
		t.Errorf("expected initial tab to be Records, got %d", model.activeTab)
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if model.Decision() != DecisionQuit {
		t.Error("expected no submission before the user decides")
	}
	if model.themeProvider.CurrentName() != ui.DefaultTheme {
		t.Errorf("expected default theme, got %q", model.themeProvider.CurrentName())
	}
}

func TestNew_WithTheme(t *testing.T) {
	model := New(testOutcomes(), Options{Theme: "nord"})

	if model.themeProvider.CurrentName() != "nord" {
		t.Errorf("expected theme nord, got %q", model.themeProvider.CurrentName())
	}
}

func TestView_Loading(t *testing.T) {
	model := New(testOutcomes(), Options{})

	if model.View() != "Loading..." {
		t.Errorf("expected loading view before the first resize, got %q", model.View())
	}
}

func TestView_WithSize(t *testing.T) {
	model := New(testOutcomes(), Options{})
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 140, Height: 40})

	view := model.View()
	for _, want := range []string{"Records", "Summary", "BSP-9", "Timesheets", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	model := New(testOutcomes(), Options{})

	model, cmd := update(t, model, runeKey('q'))

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if model.Decision() != DecisionQuit {
		t.Error("quitting must not submit")
	}
}

func TestUpdate_HelpKey(t *testing.T) {
	model := New(testOutcomes(), Options{})
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	model, _ = update(t, model, runeKey('?'))
	if !model.showHelp {
		t.Fatal("expected help to be shown")
	}
	if !strings.Contains(model.View(), "Keyboard Shortcuts") {
		t.Error("expected help overlay")
	}

	model, _ = update(t, model, runeKey('?'))
	if model.showHelp {
		t.Error("expected help to be hidden")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	model := New(testOutcomes(), Options{})

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabSummary {
		t.Errorf("expected Summary tab, got %d", model.activeTab)
	}

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyTab})
	if model.activeTab != TabRecords {
		t.Errorf("expected wraparound to Records, got %d", model.activeTab)
	}

	model, _ = update(t, model, tea.KeyMsg{Type: tea.KeyShiftTab})
	if model.activeTab != TabSummary {
		t.Errorf("expected shift+tab to wrap to Summary, got %d", model.activeTab)
	}

	model, _ = update(t, model, runeKey('1'))
	if model.activeTab != TabRecords {
		t.Errorf("expected 1 to select Records, got %d", model.activeTab)
	}
	model, _ = update(t, model, runeKey('2'))
	if model.activeTab != TabSummary {
		t.Errorf("expected 2 to select Summary, got %d", model.activeTab)
	}
}

func TestUpdate_ThemeKey(t *testing.T) {
	model := New(testOutcomes(), Options{})
	initial := model.themeProvider.CurrentName()

	model, _ = update(t, model, runeKey('t'))

	if model.themeProvider.CurrentName() == initial && len(model.themeProvider.AvailableThemes()) > 1 {
		t.Errorf("expected theme to change from %q", initial)
	}
}

func TestUpdate_SubmitFlow(t *testing.T) {
	model := New(testOutcomes(), Options{})
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	model, _ = update(t, model, runeKey('s'))
	if !strings.Contains(model.View(), "Submit 1 worklog?") {
		t.Fatalf("expected confirmation dialog, got %q", model.View())
	}

	// q is swallowed while the dialog is open
	model, cmd := update(t, model, runeKey('q'))
	if cmd != nil {
		t.Error("q must not quit while confirming")
	}

	model, cmd = update(t, model, runeKey('y'))
	if cmd == nil {
		t.Fatal("expected a command after confirming")
	}
	msg := cmd()
	if _, ok := msg.(ui.SubmitRequestedMsg); !ok {
		t.Fatalf("expected SubmitRequestedMsg, got %T", msg)
	}

	model, cmd = update(t, model, msg)
	if model.Decision() != DecisionSubmit {
		t.Error("expected submit decision")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg after submit")
	}
}

func TestUpdate_CtrlCWhileSearching(t *testing.T) {
	model := New(testOutcomes(), Options{})

	model, _ = update(t, model, runeKey('/'))
	model, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})

	if cmd == nil {
		t.Fatal("ctrl+c should always quit")
	}
	if model.Decision() != DecisionQuit {
		t.Error("ctrl+c must not submit")
	}
}

func TestRenderStatusBar_DryRun(t *testing.T) {
	model := New(testOutcomes(), Options{DryRun: true})
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 160, Height: 40})

	bar := model.renderStatusBar()
	if !strings.Contains(bar, "dry-run") {
		t.Errorf("expected dry-run hint, got %q", bar)
	}
}

func TestTabNames(t *testing.T) {
	if len(tabNames) != 2 || tabNames[TabRecords] != "Records" || tabNames[TabSummary] != "Summary" {
		t.Errorf("unexpected tab names %v", tabNames)
	}
}
