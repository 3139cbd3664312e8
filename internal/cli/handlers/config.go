package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/jira-worklog-import/internal/cli"
)

// ShowConfig displays the effective configuration, secrets masked
func ShowConfig(deps *cli.Deps) {
	path := deps.Services.Config.GetPath()

	rendered, err := deps.Services.Config.Show()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to render configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if deps.Services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	cfg := deps.Services.Config.Get()
	if err := cfg.ValidateJira(); err != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "Jira: %v (only --dry-run imports will run)\n", err)
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Jira: %s as %s\n", cfg.Jira.Host, cfg.Jira.User)
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Environment and .env values override the file.")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprint(deps.Stdout, rendered)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	err := deps.Services.Config.Init()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	path := deps.Services.Config.GetPath()
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", path)
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}

// ShowConfigPath prints the config file location
func ShowConfigPath(deps *cli.Deps) {
	_, _ = fmt.Fprintln(deps.Stdout, deps.Services.Config.GetPath())
}
