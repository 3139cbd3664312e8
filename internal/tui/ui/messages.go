package ui

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// SubmitRequestedMsg is sent by the records view when the user confirmed
// the submission of the accepted records.
type SubmitRequestedMsg struct{}
