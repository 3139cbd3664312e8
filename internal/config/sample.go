package config

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/xolan/jira-worklog-import/internal/app"
)

// GenerateSampleConfig returns a commented-out sample config file.
// Every key shows its default value.
func GenerateSampleConfig() string {
	d := DefaultConfig()
	return fmt.Sprintf(`# %s configuration file
#
# Environment variables (and a .env file in the working directory) override
# these values; command-line flags override both.

# Date format of the input timestamps: a Go layout ("2006-01-02 15:04:05"),
# an alias ("ATOM", "RFC3339", "ISO8601") or a PHP date() format ("Y-m-d H:i:s")
# date_format = %q

# Timezone of the input timestamps (e.g., "America/Bogota", "Europe/London", "UTC")
# date_timezone = %q

# Column delimiter of CSV/TSV input; "tab" for tab-separated files
# csv_delimiter = %q

# Header rows skipped and maximum rows read (0 = no limit)
# offset = %d
# limit = %d

# debug = false
# dry_run = false

# Run log, one line per processed record
# log_file = %q

# Timestamps whose offset disagrees with date_timezone: "convert" or "reject"
# offset_policy = %q

# Review TUI theme (e.g., "dracula", "nord")
# theme = "dracula"

# [jira]
# host = "https://example.atlassian.net"
# user = "me@example.com"
# token = "api-token"

# Table column indices (0-based); time = -1 appends default_time to the date
# [columns]
# date = %d
# time = %d
# duration = %d
# comment = %d
# issue = %d
# default_time = %q
# sheet = ""
`, app.Name, d.DateFormat, d.DateTimezone, d.CSVDelimiter, d.Offset, d.Limit,
		d.LogFile, d.OffsetPolicy,
		d.Columns.Date, d.Columns.Time, d.Columns.Duration, d.Columns.Comment, d.Columns.Issue, d.Columns.DefaultTime)
}

// Encode renders cfg as TOML with the Jira token masked
func Encode(cfg Config) (string, error) {
	if cfg.Jira.Token != "" {
		cfg.Jira.Token = "********"
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}
