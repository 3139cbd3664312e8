package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/jira-worklog-import/internal/service"
	"github.com/xolan/jira-worklog-import/internal/tui/ui"
)

// Filter selects which outcomes the records view lists
type Filter int

const (
	FilterAll Filter = iota
	FilterAccepted
	FilterRejected
)

var filterNames = []string{"all", "accepted", "rejected"}

func (f Filter) String() string {
	return filterNames[f]
}

// recordsMode represents the current mode of the records view
type recordsMode int

const (
	recordsModeNormal recordsMode = iota
	recordsModeSearch
	recordsModeConfirm
)

// detailHeight is the number of lines reserved below the list
const detailHeight = 4

// RecordsModel lists normalized records and asks for submission confirmation
type RecordsModel struct {
	outcomes []service.Outcome
	styles   ui.Styles
	keys     ui.KeyMap
	dryRun   bool

	// UI state
	width   int
	height  int
	cursor  int
	offset  int
	filter  Filter
	query   string
	visible []service.Outcome

	mode        recordsMode
	searchInput textinput.Model
}

// NewRecordsModel creates a new records view model
func NewRecordsModel(outcomes []service.Outcome, dryRun bool, styles ui.Styles, keys ui.KeyMap) RecordsModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search issue, comment or status..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	m := RecordsModel{
		outcomes:    outcomes,
		styles:      styles,
		keys:        keys,
		dryRun:      dryRun,
		searchInput: searchInput,
	}
	m.applyFilter()
	return m
}

// Init implements tea.Model
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m RecordsModel) Update(msg tea.Msg) (RecordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case recordsModeSearch:
			return m.handleSearchMode(msg)
		case recordsModeConfirm:
			return m.handleConfirmMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.listRows())
		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.listRows())
		case key.Matches(msg, m.keys.Filter):
			m.filter = Filter((int(m.filter) + 1) % len(filterNames))
			m.applyFilter()
		case key.Matches(msg, m.keys.Search):
			m.mode = recordsModeSearch
			m.searchInput.SetValue(m.query)
			m.searchInput.Focus()
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Back):
			if m.query != "" {
				m.query = ""
				m.applyFilter()
			}
		case key.Matches(msg, m.keys.Submit):
			if m.AcceptedCount() > 0 {
				m.mode = recordsModeConfirm
			}
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

func (m RecordsModel) handleSearchMode(msg tea.KeyMsg) (RecordsModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.query = strings.TrimSpace(m.searchInput.Value())
		m.mode = recordsModeNormal
		m.searchInput.Blur()
		m.applyFilter()
		return m, nil
	case tea.KeyEsc:
		m.mode = recordsModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m RecordsModel) handleConfirmMode(msg tea.KeyMsg) (RecordsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = recordsModeNormal
		return m, func() tea.Msg { return ui.SubmitRequestedMsg{} }
	case key.Matches(msg, m.keys.Cancel):
		m.mode = recordsModeNormal
	}
	return m, nil
}

// View implements tea.Model
func (m RecordsModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Records (%d of %d, filter: %s)", len(m.visible), len(m.outcomes), m.filter)
	if m.query != "" {
		title += fmt.Sprintf(" matching %q", m.query)
	}
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n")

	if m.mode == recordsModeSearch {
		b.WriteString(m.styles.InputFocused.Render(m.searchInput.View()))
		b.WriteString("\n")
	}

	if m.mode == recordsModeConfirm {
		b.WriteString(m.renderConfirmDialog())
		return b.String()
	}

	if len(m.visible) == 0 {
		b.WriteString(m.styles.StatusHelp.Render("No records match."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(RenderRecordList(m.visible, m.styles, RenderOptions{
		Width:  m.width,
		Cursor: m.cursor,
		Offset: m.offset,
		Rows:   m.listRows(),
	}))
	b.WriteString("\n")
	b.WriteString(m.renderDetail())

	return b.String()
}

// renderDetail shows the full status message of the selected record
func (m RecordsModel) renderDetail() string {
	selected, ok := m.Selected()
	if !ok {
		return ""
	}
	rec := selected.Record()

	style := m.styles.Success
	if _, rejected := selected.(service.Rejected); rejected {
		style = m.styles.Error
	}

	var b strings.Builder
	b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("Line %d:", rec.Line)))
	b.WriteString(style.Render(rec.StatusMessage))
	b.WriteString("\n")
	if accepted, ok := selected.(service.Accepted); ok {
		for _, w := range accepted.Warnings {
			b.WriteString(m.styles.Warning.Render("  ! " + w))
			b.WriteString("\n")
		}
	}
	b.WriteString(m.styles.RecordDetail.Render(truncate(rec.Comment, max(m.width-4, minComment))))
	return b.String()
}

func (m RecordsModel) renderConfirmDialog() string {
	accepted := m.AcceptedCount()
	skipped := len(m.outcomes) - accepted

	action := "Submit"
	if m.dryRun {
		action = "Dry-run"
	}

	var b strings.Builder
	b.WriteString(m.styles.DialogTitle.Render(fmt.Sprintf("%s %d %s?", action, accepted, pluralize("worklog", accepted))))
	b.WriteString("\n")
	if skipped > 0 {
		b.WriteString(m.styles.Warning.Render(fmt.Sprintf("%d rejected %s will be logged and skipped.", skipped, pluralize("record", skipped))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.StatusKey.Render("y"))
	b.WriteString(" confirm  ")
	b.WriteString(m.styles.StatusKey.Render("n"))
	b.WriteString(" cancel")
	return m.styles.Dialog.Render(b.String())
}

// SetSize sets the view dimensions
func (m *RecordsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampCursor()
}

// IsInputMode reports whether the view captures all keys (search or confirmation)
func (m RecordsModel) IsInputMode() bool {
	return m.mode != recordsModeNormal
}

// Selected returns the outcome under the cursor
func (m RecordsModel) Selected() (service.Outcome, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return nil, false
	}
	return m.visible[m.cursor], true
}

// AcceptedCount returns the number of records that would be submitted
func (m RecordsModel) AcceptedCount() int {
	return countAccepted(m.outcomes)
}

// Visible returns the outcomes shown with the current filter and search
func (m RecordsModel) Visible() []service.Outcome {
	return m.visible
}

// CurrentFilter returns the active status filter
func (m RecordsModel) CurrentFilter() Filter {
	return m.filter
}

func (m *RecordsModel) applyFilter() {
	query := strings.ToLower(m.query)
	m.visible = m.visible[:0:0]
	for _, o := range m.outcomes {
		_, accepted := o.(service.Accepted)
		switch {
		case m.filter == FilterAccepted && !accepted:
			continue
		case m.filter == FilterRejected && accepted:
			continue
		}
		if query != "" && !matches(o, query) {
			continue
		}
		m.visible = append(m.visible, o)
	}
	m.cursor = 0
	m.offset = 0
}

// matches reports whether the record's issue key, comment or status message
// contains the lowercase query
func matches(o service.Outcome, query string) bool {
	rec := o.Record()
	for _, field := range []string{rec.IssueKey, rec.Comment, rec.StatusMessage} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func (m *RecordsModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *RecordsModel) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	rows := m.listRows()
	if rows <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// listRows is the number of list rows that fit; 0 shows every row
func (m RecordsModel) listRows() int {
	if m.height == 0 {
		return 0
	}
	return max(m.height-detailHeight-3, 1)
}
