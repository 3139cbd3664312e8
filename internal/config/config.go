package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/xolan/jira-worklog-import/internal/app"
	"github.com/xolan/jira-worklog-import/internal/osutil"
	"github.com/xolan/jira-worklog-import/internal/timeutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvFile is the dotenv file read from the working directory
	EnvFile = ".env"
)

// Offset policies for timestamps whose explicit UTC offset disagrees with the
// configured timezone.
const (
	// OffsetPolicyConvert converts the instant into the configured timezone and warns
	OffsetPolicyConvert = "convert"
	// OffsetPolicyReject rejects the record
	OffsetPolicyReject = "reject"
)

// Config represents the application configuration
type Config struct {
	// DateFormat is the layout every input timestamp must match (Go layout,
	// alias such as "ATOM", or PHP date() format)
	DateFormat string `toml:"date_format"`
	// DateTimezone is the IANA timezone the input timestamps belong to
	DateTimezone string `toml:"date_timezone"`
	// CSVDelimiter separates columns in delimited text input; "tab" or "\t" for tabs
	CSVDelimiter string `toml:"csv_delimiter"`
	// Offset is the number of leading table rows skipped (header rows)
	Offset int `toml:"offset"`
	// Limit caps the number of table rows read; 0 means no limit
	Limit int `toml:"limit"`
	// Debug enables debug logging
	Debug bool `toml:"debug"`
	// DryRun validates every record without submitting
	DryRun bool `toml:"dry_run"`
	// LogFile is the per-run log the record lines are appended to
	LogFile string `toml:"log_file"`
	// OffsetPolicy is "convert" or "reject"
	OffsetPolicy string `toml:"offset_policy"`
	// Theme is the bubbletint theme of the review TUI
	Theme string `toml:"theme"`

	Jira    JiraConfig `toml:"jira"`
	Columns Columns    `toml:"columns"`
}

// JiraConfig holds the submission endpoint and credentials
type JiraConfig struct {
	Host  string `toml:"host"`
	User  string `toml:"user"`
	Token string `toml:"token"`
}

// Columns maps table columns (0-based) to record fields
type Columns struct {
	Date     int `toml:"date"`
	Time     int `toml:"time"` // -1: no time column, DefaultTime is appended
	Duration int `toml:"duration"`
	Comment  int `toml:"comment"`
	Issue    int `toml:"issue"`
	// DefaultTime is appended to the date column when there is no time column
	DefaultTime string `toml:"default_time"`
	// Sheet is the workbook sheet read from XLSX input; empty means the first sheet
	Sheet string `toml:"sheet"`
}

// DefaultConfig returns a Config with the defaults of the original importer.
// - date_format: "ATOM"
// - date_timezone: "America/Bogota"
// - csv_delimiter: ","
// - offset: 1 (skip the header row)
// - limit: 1000
func DefaultConfig() Config {
	return Config{
		DateFormat:   timeutil.DefaultFormat,
		DateTimezone: "America/Bogota",
		CSVDelimiter: ",",
		Offset:       1,
		Limit:        1000,
		LogFile:      filepath.Join("files", app.Name+".log"),
		OffsetPolicy: OffsetPolicyConvert,
		Columns: Columns{
			Date:        7,
			Time:        -1,
			Duration:    11,
			Comment:     5,
			Issue:       12,
			DefaultTime: "12:00:00",
		},
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Current.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, app.Name)

	if err := osutil.Current.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads the TOML file at path on top of DefaultConfig.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// LoadOrDefault loads the config file if it exists and returns DefaultConfig
// otherwise. Errors other than a missing file are returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to access config file: %w", err)
	}
	return Load(path)
}

// Normalize trims values and expands delimiter aliases in place
func (c *Config) Normalize() {
	c.DateFormat = strings.TrimSpace(c.DateFormat)
	c.DateTimezone = strings.TrimSpace(c.DateTimezone)
	c.OffsetPolicy = strings.ToLower(strings.TrimSpace(c.OffsetPolicy))
	c.Theme = strings.TrimSpace(c.Theme)
	c.Jira.Host = strings.TrimRight(strings.TrimSpace(c.Jira.Host), "/")

	switch strings.ToLower(c.CSVDelimiter) {
	case "tab", `\t`:
		c.CSVDelimiter = "\t"
	}

	if c.DateFormat == "" {
		c.DateFormat = timeutil.DefaultFormat
	}
	if c.OffsetPolicy == "" {
		c.OffsetPolicy = OffsetPolicyConvert
	}
}

// Validate checks that the configuration can drive an import
func (c *Config) Validate() error {
	if !timeutil.IsValidTimezone(c.DateTimezone) {
		return fmt.Errorf("invalid date_timezone %q: use an IANA timezone name (e.g., America/Bogota) or \"Local\"", c.DateTimezone)
	}
	if utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		return fmt.Errorf("invalid csv_delimiter %q: must be a single character", c.CSVDelimiter)
	}
	if c.Offset < 0 {
		return fmt.Errorf("invalid offset %d: must not be negative", c.Offset)
	}
	if c.Limit < 0 {
		return fmt.Errorf("invalid limit %d: must not be negative", c.Limit)
	}
	switch c.OffsetPolicy {
	case OffsetPolicyConvert, OffsetPolicyReject:
	default:
		return fmt.Errorf("invalid offset_policy %q: must be %q or %q", c.OffsetPolicy, OffsetPolicyConvert, OffsetPolicyReject)
	}

	cols := map[string]int{
		"date":     c.Columns.Date,
		"duration": c.Columns.Duration,
		"comment":  c.Columns.Comment,
		"issue":    c.Columns.Issue,
	}
	for name, idx := range cols {
		if idx < 0 {
			return fmt.Errorf("invalid columns.%s %d: must not be negative", name, idx)
		}
	}
	if c.Columns.Time < -1 {
		return fmt.Errorf("invalid columns.time %d: use -1 for no time column", c.Columns.Time)
	}

	return nil
}

// ValidateJira checks that submission credentials are present.
// Dry runs never contact Jira and skip this check.
func (c *Config) ValidateJira() error {
	var missing []string
	if c.Jira.Host == "" {
		missing = append(missing, "JIRA_HOST")
	}
	if c.Jira.User == "" {
		missing = append(missing, "JIRA_USER")
	}
	if c.Jira.Token == "" {
		missing = append(missing, "JIRA_PASS")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing Jira settings: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Delimiter returns the CSV delimiter as a rune
func (c Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return r
}
