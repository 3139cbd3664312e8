// Package tui provides the review screen shown before an import: every record
// of the input file as it will be logged, with a confirmation step before
// anything is submitted.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/jira-worklog-import/internal/service"
	"github.com/xolan/jira-worklog-import/internal/tui/ui"
	"github.com/xolan/jira-worklog-import/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabRecords Tab = iota
	TabSummary
)

var tabNames = []string{"Records", "Summary"}

// Decision is what the user chose when the review screen closed
type Decision int

const (
	// DecisionQuit leaves without importing
	DecisionQuit Decision = iota
	// DecisionSubmit runs the import
	DecisionSubmit
)

// Options configures the review screen
type Options struct {
	Input  string
	Theme  string
	DryRun bool
}

// Model is the root TUI model
type Model struct {
	outcomes []service.Outcome
	opts     Options
	decision Decision

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	recordsView views.RecordsModel
	summaryView views.SummaryModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a review model over outcomes
func New(outcomes []service.Outcome, opts Options) Model {
	themeProvider := ui.NewThemeProvider(opts.Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		outcomes:      outcomes,
		opts:          opts,
		activeTab:     TabRecords,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		recordsView:   views.NewRecordsModel(outcomes, opts.DryRun, styles, keys),
		summaryView:   views.NewSummaryModel(outcomes, opts.Input, styles),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.recordsView.Init(),
		m.summaryView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Search input and the confirmation dialog get every key
		capturing := m.activeTab == TabRecords && m.recordsView.IsInputMode()

		if !capturing {
			switch {
			case key.Matches(msg, m.keys.Quit):
				m.decision = DecisionQuit
				return m, tea.Quit

			case key.Matches(msg, m.keys.Help):
				m.showHelp = !m.showHelp
				return m, nil

			case key.Matches(msg, m.keys.NextTab):
				m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
				return m, nil

			case key.Matches(msg, m.keys.PrevTab):
				m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
				return m, nil

			case key.Matches(msg, m.keys.Tab1):
				m.activeTab = TabRecords
				return m, nil

			case key.Matches(msg, m.keys.Tab2):
				m.activeTab = TabSummary
				return m, nil

			case key.Matches(msg, m.keys.Theme):
				return m.changeTheme(m.themeProvider.NextTheme()), nil
			}
		} else if msg.Type == tea.KeyCtrlC {
			m.decision = DecisionQuit
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 6 // tabs, status bar and padding
		m.recordsView.SetSize(m.width-4, contentHeight)
		m.summaryView.SetSize(m.width-4, contentHeight)
		return m, nil

	case ui.SubmitRequestedMsg:
		m.decision = DecisionSubmit
		return m, tea.Quit
	}

	switch m.activeTab {
	case TabRecords:
		m.recordsView, cmd = m.recordsView.Update(msg)
	case TabSummary:
		m.summaryView, cmd = m.summaryView.Update(msg)
	}

	return m, cmd
}

// changeTheme applies the current theme to every view
func (m Model) changeTheme(name string) Model {
	m.styles = m.themeProvider.Styles()
	themeMsg := ui.ThemeChangedMsg{ThemeName: name, Styles: m.styles}
	m.recordsView, _ = m.recordsView.Update(themeMsg)
	m.summaryView, _ = m.summaryView.Update(themeMsg)
	return m
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabRecords:
		b.WriteString(m.recordsView.View())
	case TabSummary:
		b.WriteString(m.summaryView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.styles.App.Render(b.String())
}

// Decision returns the user's choice once the program has finished
func (m Model) Decision() Decision {
	return m.decision
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the key hints at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.activeTab == TabRecords && m.recordsView.IsInputMode() {
		parts = append(parts, m.renderKeyHelp("Enter/y", "confirm"))
		parts = append(parts, m.renderKeyHelp("Esc/n", "cancel"))
	} else {
		if m.activeTab == TabRecords {
			parts = append(parts, m.renderKeyHelp("f", "filter"))
			parts = append(parts, m.renderKeyHelp("/", "search"))
		}
		action := "submit"
		if m.opts.DryRun {
			action = "dry-run"
		}
		parts = append(parts, m.renderKeyHelp("s", action))
		parts = append(parts, m.renderKeyHelp("t", m.themeProvider.CurrentDisplayName()))
		parts = append(parts, m.renderKeyHelp("1-2", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content) - 6
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// renderHelpOverlay renders the keyboard reference
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.DialogTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")
	help.WriteString("  Tab/1-2    Switch views\n")
	help.WriteString("  j/k        Navigate up/down\n")
	help.WriteString("  PgUp/PgDn  Page up/down\n")
	help.WriteString("  f          Cycle filter (all, accepted, rejected)\n")
	help.WriteString("  /          Search records\n")
	help.WriteString("  Esc        Clear search\n")
	help.WriteString("  s          Submit accepted records\n")
	help.WriteString(fmt.Sprintf("  t          Next theme (%d available)\n", len(m.themeProvider.AvailableThemes())))
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit without importing\n")
	help.WriteString("\n")
	help.WriteString(m.styles.StatusHelp.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run shows the review screen and returns the user's decision
func Run(outcomes []service.Outcome, opts Options) (Decision, error) {
	p := tea.NewProgram(New(outcomes, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return DecisionQuit, err
	}
	if m, ok := final.(Model); ok {
		return m.Decision(), nil
	}
	return DecisionQuit, nil
}
