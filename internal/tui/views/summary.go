package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/jira-worklog-import/internal/duration"
	"github.com/xolan/jira-worklog-import/internal/service"
	"github.com/xolan/jira-worklog-import/internal/stats"
	"github.com/xolan/jira-worklog-import/internal/tui/ui"
)

// SummaryModel shows what an import of the reviewed records would log
type SummaryModel struct {
	styles ui.Styles
	input  string

	width  int
	height int

	statistics stats.Statistics
	issues     []stats.IssueBreakdown
}

// NewSummaryModel creates a new summary view model
func NewSummaryModel(outcomes []service.Outcome, input string, styles ui.Styles) SummaryModel {
	records := projectedRecords(outcomes)
	return SummaryModel{
		styles:     styles,
		input:      input,
		statistics: stats.CalculateStatistics(records),
		issues:     stats.CalculateIssueBreakdown(records),
	}
}

// Init implements tea.Model
func (m SummaryModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m SummaryModel) Update(msg tea.Msg) (SummaryModel, tea.Cmd) {
	if msg, ok := msg.(ui.ThemeChangedMsg); ok {
		m.styles = msg.Styles
	}
	return m, nil
}

// View implements tea.Model
func (m SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Summary"))
	b.WriteString("\n")

	s := m.statistics
	if m.input != "" {
		b.WriteString(m.renderStatLine("Input:", m.input))
	}
	b.WriteString(m.renderStatLine("Records:", fmt.Sprintf("%d", s.Processed)))
	b.WriteString(m.renderStatLine("Accepted:", m.styles.Success.Render(fmt.Sprintf("%d", s.DryRun))))
	b.WriteString(m.renderStatLine("Rejected:", m.styles.Error.Render(fmt.Sprintf("%d", s.Rejected))))
	b.WriteString(m.renderStatLine("Hours to log:", s.Hours.String()+duration.Unit))

	if len(m.issues) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Issue"))
		b.WriteString("\n")
		for _, issue := range m.issues {
			line := fmt.Sprintf("  %-16s %8s  (%d %s)",
				issue.IssueKey,
				issue.Hours.String()+duration.Unit,
				issue.EntryCount,
				pluralize("record", issue.EntryCount))
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Statistics returns the projected run statistics
func (m SummaryModel) Statistics() stats.Statistics {
	return m.statistics
}

func (m SummaryModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + " " + m.styles.StatValue.Render(value) + "\n"
}
