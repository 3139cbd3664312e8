// Package logging builds the diagnostic logger shared by the CLI and services.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

// Level names accepted by ParseLevel
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Config controls the logger output
type Config struct {
	Level      string
	Output     io.Writer
	JSON       bool
	TimeFormat string
}

// DefaultConfig logs warnings and errors to stderr as text
func DefaultConfig() Config {
	return Config{
		Level:      LevelWarn,
		Output:     os.Stderr,
		TimeFormat: "15:04:05",
	}
}

// ForDebug returns the default config, switched to debug level when debug is set
func ForDebug(debug bool) Config {
	cfg := DefaultConfig()
	if debug {
		cfg.Level = LevelDebug
	}
	return cfg
}

// ParseLevel maps a level name to a charm log level; unknown names are info
func ParseLevel(level string) charmlog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelDebug:
		return charmlog.DebugLevel
	case LevelInfo:
		return charmlog.InfoLevel
	case LevelWarn:
		return charmlog.WarnLevel
	case LevelError:
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

// New creates a logger from cfg
func New(cfg Config) *charmlog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level := ParseLevel(cfg.Level)

	logger := charmlog.NewWithOptions(out, charmlog.Options{
		ReportTimestamp: true,
		ReportCaller:    level == charmlog.DebugLevel,
		TimeFormat:      cfg.TimeFormat,
		Level:           level,
		Prefix:          "importer",
	})
	if cfg.JSON {
		logger.SetFormatter(charmlog.JSONFormatter)
	} else {
		logger.SetFormatter(charmlog.TextFormatter)
		logger.SetStyles(defaultStyles())
	}
	return logger
}

// Discard returns a logger that drops everything
func Discard() *charmlog.Logger {
	return charmlog.New(io.Discard)
}

func defaultStyles() *charmlog.Styles {
	styles := charmlog.DefaultStyles()
	styles.Levels[charmlog.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Bold(true).
		Foreground(lipgloss.Color("63"))
	styles.Levels[charmlog.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("214"))
	styles.Levels[charmlog.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Bold(true).
		Foreground(lipgloss.Color("204"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	return styles
}
