package cmd

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/jira"
	"github.com/xolan/jira-worklog-import/internal/service"
	"github.com/xolan/jira-worklog-import/internal/tui"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)
	// ConfigPath locates config.toml when --config is not given
	ConfigPath func() (string, error)
	// EnvFile is the dotenv file layered over config.toml
	EnvFile string
	// NewSubmitter builds the work-log API client for non dry-run imports
	NewSubmitter func(cfg config.Config, logger *log.Logger) (service.Submitter, error)
	// Review shows the review screen and returns the user's decision
	Review func(outcomes []service.Outcome, opts tui.Options) (tui.Decision, error)
	Now    func() time.Time
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Stdin:        os.Stdin,
		Exit:         os.Exit,
		ConfigPath:   config.GetConfigPath,
		EnvFile:      config.EnvFile,
		NewSubmitter: newJiraSubmitter,
		Review:       tui.Run,
		Now:          time.Now,
	}
}

// newJiraSubmitter creates a Jira client from the resolved settings
func newJiraSubmitter(cfg config.Config, logger *log.Logger) (service.Submitter, error) {
	return jira.NewClient(jira.Config{
		Host:   cfg.Jira.Host,
		User:   cfg.Jira.User,
		Token:  cfg.Jira.Token,
		Logger: logger,
		Debug:  cfg.Debug,
	})
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
