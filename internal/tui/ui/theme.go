package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the theme used when none is configured or the configured
// one does not exist
const DefaultTheme = "dracula"

// ThemeProvider selects the bubbletint theme the review TUI is drawn with
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider creates a ThemeProvider starting at theme.
// An empty or unknown theme leaves DefaultTheme selected.
func NewThemeProvider(theme string) *ThemeProvider {
	tints := tint.DefaultTints()

	var fallback tint.Tint
	for _, t := range tints {
		if t.ID() == DefaultTheme {
			fallback = t
			break
		}
	}
	if fallback == nil && len(tints) > 0 {
		fallback = tints[0]
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	if theme != "" {
		tp.SetTheme(theme)
	}
	return tp
}

// SetTheme selects a theme by id and reports whether it exists
func (tp *ThemeProvider) SetTheme(id string) bool {
	return tp.registry.SetTintID(id)
}

// NextTheme cycles to the next theme and returns its id
func (tp *ThemeProvider) NextTheme() string {
	tp.registry.NextTint()
	return tp.registry.ID()
}

// CurrentName returns the id of the selected theme
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the human readable name of the selected theme
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns the sorted ids of all themes
func (tp *ThemeProvider) AvailableThemes() []string {
	ids := tp.registry.TintIDs()
	sort.Strings(ids)
	return ids
}

// Registry returns the underlying bubbletint registry
func (tp *ThemeProvider) Registry() *tint.Registry {
	return tp.registry
}

// Styles returns the styles of the selected theme
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
