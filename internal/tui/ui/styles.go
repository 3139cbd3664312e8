package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/xolan/jira-worklog-import/internal/worklog"
)

// Styles contains all the styles used in the review TUI
type Styles struct {
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style
	StatusHelp  lipgloss.Style

	// Record list
	RecordSelected lipgloss.Style
	RecordNormal   lipgloss.Style
	RecordLine     lipgloss.Style
	RecordIssue    lipgloss.Style
	RecordHours    lipgloss.Style
	RecordTime     lipgloss.Style
	RecordDetail   lipgloss.Style

	// Record status
	Accepted lipgloss.Style
	Rejected lipgloss.Style
	Pending  lipgloss.Style

	// Summary
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette is the set of semantic colors a Styles is built from
type palette struct {
	primary, secondary, accent, muted lipgloss.TerminalColor
	success, warning, errorColor      lipgloss.TerminalColor
	fg, bg, selection                 lipgloss.TerminalColor
}

// DefaultStyles returns the styles used without a theme
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:    lipgloss.Color("99"),  // Purple
		secondary:  lipgloss.Color("39"),  // Cyan
		accent:     lipgloss.Color("212"), // Pink
		muted:      lipgloss.Color("240"), // Gray
		success:    lipgloss.Color("82"),  // Green
		warning:    lipgloss.Color("214"), // Orange
		errorColor: lipgloss.Color("196"), // Red
		fg:         lipgloss.Color("252"),
		bg:         lipgloss.Color("236"),
		selection:  lipgloss.Color("237"),
	})
}

// NewStylesFromRegistry creates styles from the current bubbletint theme.
// Purple is the primary color, Cyan the secondary and BrightPurple the accent;
// status colors map to Green, Yellow and Red.
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:    r.Purple(),
		secondary:  r.Cyan(),
		accent:     r.BrightPurple(),
		muted:      r.BrightBlack(),
		success:    r.Green(),
		warning:    r.Yellow(),
		errorColor: r.Red(),
		fg:         r.Fg(),
		bg:         r.Bg(),
		selection:  r.BrightBlack(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusValue: lipgloss.NewStyle().
			Foreground(p.fg),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		RecordSelected: lipgloss.NewStyle().
			Background(p.selection).
			Bold(true),
		RecordNormal: lipgloss.NewStyle(),
		RecordLine: lipgloss.NewStyle().
			Foreground(p.muted),
		RecordIssue: lipgloss.NewStyle().
			Foreground(p.primary),
		RecordHours: lipgloss.NewStyle().
			Foreground(p.accent).
			Align(lipgloss.Right),
		RecordTime: lipgloss.NewStyle().
			Foreground(p.secondary),
		RecordDetail: lipgloss.NewStyle().
			Foreground(p.fg).
			PaddingLeft(2),

		Accepted: lipgloss.NewStyle().
			Foreground(p.success),
		Rejected: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Pending: lipgloss.NewStyle().
			Foreground(p.warning),

		StatLabel: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(20),
		StatValue: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(60),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}

// ForStatus returns the style of a record status: submitted and dry-run
// records are accepted, rejected ones are errors, anything else is pending
func (s Styles) ForStatus(status worklog.Status) lipgloss.Style {
	switch status {
	case worklog.StatusSubmitted, worklog.StatusDryRun:
		return s.Accepted
	case worklog.StatusRejected:
		return s.Rejected
	default:
		return s.Pending
	}
}
