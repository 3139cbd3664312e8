package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/xolan/jira-worklog-import/internal/app"
	"github.com/xolan/jira-worklog-import/internal/cli"
	"github.com/xolan/jira-worklog-import/internal/cli/handlers"
	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/logging"
	"github.com/xolan/jira-worklog-import/internal/reader"
	"github.com/xolan/jira-worklog-import/internal/runlog"
	"github.com/xolan/jira-worklog-import/internal/service"
	"github.com/xolan/jira-worklog-import/internal/tui"
)

const inputHint = "Check the file format and the --format, --offset and --csv-delimiter flags"

var rootCmd = &cobra.Command{
	Use:   app.Name + " <filename>",
	Short: "Import time-tracking exports into Jira work logs",
	Long: `jira-worklog-import reads a time-tracking export and logs every record as a
work-log entry on the Jira issue named in it.

Usage:
  jira-worklog-import export.json                 Import a JSON export
  jira-worklog-import export.csv --dry-run        Validate without submitting
  jira-worklog-import export.xlsx --review        Review records before importing
  jira-worklog-import history                     Summarize the run log
  jira-worklog-import config                      Show the effective configuration

Each record needs an issue key (e.g. PROJ-123) in its project, title or notes,
a duration (H:MM:SS or decimal hours, rounded up to the quarter hour) and a
start timestamp matching --date-format in --date-timezone.

Settings are read from config.toml, then .env and the environment
(JIRA_HOST, JIRA_USER, JIRA_PASS, DATE_FORMAT, DATE_TIMEZONE, CSV_DELIMITER,
OFFSET, LIMIT, DRY_RUN, DEBUG), then flags.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		review, _ := cmd.Flags().GetBool("review")
		runImport(cmd, args[0], review)
	},
}

func init() {
	addImportFlags(rootCmd.PersistentFlags())
	rootCmd.Flags().Bool("review", false, "Review the records in an interactive screen before importing")
	registerCompletions()
}

// addImportFlags registers the flags that override configuration values
func addImportFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config.toml (default: user config directory)")
	fs.Bool("dry-run", false, "Validate records without submitting them")
	fs.String("date-format", "", "Layout of the input timestamps (Go layout, ATOM, or PHP date format)")
	fs.String("date-timezone", "", "IANA timezone of the input timestamps")
	fs.String("csv-delimiter", "", `Column delimiter of delimited text input ("tab" for tabs)`)
	fs.Int("offset", 0, "Number of leading table rows to skip")
	fs.Int("limit", 0, "Maximum number of table rows to read (0: no limit)")
	fs.Bool("debug", false, "Enable debug logging")
	fs.Bool("log-json", false, "Write diagnostic logs as JSON")
	fs.String("format", string(reader.FormatAuto), "Input format: auto, json, csv or xlsx")
	fs.String("log-file", "", "Run log the record lines are appended to")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		app.Name + " version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves the configuration for a command: config.toml (--config
// or the default location), .env and the environment, then changed flags.
// The config path is returned even when resolution fails.
func loadConfig(fs *pflag.FlagSet) (config.Config, string, error) {
	path, _ := fs.GetString("config")
	if path == "" {
		defaultPath, err := deps.ConfigPath()
		if err != nil {
			return config.DefaultConfig(), "", fmt.Errorf("failed to determine config file location: %w", err)
		}
		path = defaultPath
	}

	cfg, err := config.Resolve(path, deps.EnvFile)
	if err != nil {
		return cfg, path, err
	}

	applyFlags(fs, &cfg)
	cfg.Normalize()
	return cfg, path, cfg.Validate()
}

// applyFlags copies explicitly set flags over cfg
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) {
	if fs.Changed("dry-run") {
		cfg.DryRun, _ = fs.GetBool("dry-run")
	}
	if fs.Changed("debug") {
		cfg.Debug, _ = fs.GetBool("debug")
	}
	if fs.Changed("date-format") {
		cfg.DateFormat, _ = fs.GetString("date-format")
	}
	if fs.Changed("date-timezone") {
		cfg.DateTimezone, _ = fs.GetString("date-timezone")
	}
	if fs.Changed("csv-delimiter") {
		cfg.CSVDelimiter, _ = fs.GetString("csv-delimiter")
	}
	if fs.Changed("offset") {
		cfg.Offset, _ = fs.GetInt("offset")
	}
	if fs.Changed("limit") {
		cfg.Limit, _ = fs.GetInt("limit")
	}
	if fs.Changed("log-file") {
		cfg.LogFile, _ = fs.GetString("log-file")
	}
}

// newLogger builds the diagnostic logger, writing to deps.Stderr
func newLogger(fs *pflag.FlagSet, cfg config.Config) *log.Logger {
	lc := logging.ForDebug(cfg.Debug)
	lc.Output = deps.Stderr
	lc.JSON, _ = fs.GetBool("log-json")
	return logging.New(lc)
}

// newCLIDeps wires the handler dependencies to the command's streams
func newCLIDeps(services *service.Services, cfg config.Config) *cli.Deps {
	d := cli.NewDeps(services, cfg)
	d.Stdout = deps.Stdout
	d.Stderr = deps.Stderr
	d.Stdin = deps.Stdin
	d.Exit = deps.Exit
	return d
}

// runImport imports the file at path, optionally after an interactive review
func runImport(cmd *cobra.Command, path string, review bool) {
	fs := cmd.Flags()

	cfg, configPath, err := loadConfig(fs)
	if err != nil {
		fail("Failed to load configuration", err, "Check config.toml, .env and the command-line flags")
		return
	}

	if !cfg.DryRun {
		if err := cfg.ValidateJira(); err != nil {
			fail("Jira settings are incomplete", err, "Set JIRA_HOST, JIRA_USER and JIRA_PASS in .env, or use --dry-run")
			return
		}
	}

	formatFlag, _ := fs.GetString("format")
	format, err := reader.ParseFormat(formatFlag)
	if err != nil {
		fail("Invalid input format", err, "Use --format auto, json, csv or xlsx")
		return
	}
	opts := reader.OptionsFromConfig(cfg, format)

	logger := newLogger(fs, cfg)
	logger.Debug("configuration resolved", "config", configPath, "dryRun", cfg.DryRun,
		"dateFormat", cfg.DateFormat, "timezone", cfg.DateTimezone, "offset", cfg.Offset, "limit", cfg.Limit)

	var submitter service.Submitter
	endpoint := "(dry run, nothing is submitted)"
	if !cfg.DryRun {
		submitter, err = deps.NewSubmitter(cfg, logger)
		if err != nil {
			fail("Failed to create the Jira client", err, "Check JIRA_HOST (e.g., https://example.atlassian.net)")
			return
		}
		endpoint = cfg.Jira.Host
		if h, ok := submitter.(interface{ Host() string }); ok {
			endpoint = h.Host()
		}
	}

	runLog, err := runlog.Open(cfg.LogFile, deps.Stdout, cli.FormatRecord)
	if err != nil {
		fail("Failed to open the run log", err, "Check the --log-file flag or the log_file setting")
		return
	}

	services, err := service.NewServices(configPath, cfg, submitter, runLog, logger)
	if err != nil {
		fail("Failed to initialize the importer", err, "")
		return
	}

	if review && !reviewRecords(services, path, opts, cfg) {
		return
	}

	src, ok := openSource(path, opts)
	if !ok {
		return
	}
	defer func() { _ = src.Close() }()

	banner := runlog.Banner{Input: absPath(path), Endpoint: endpoint, Date: deps.Now()}
	if err := runLog.Banner(banner); err != nil {
		fail("Failed to write the run log", err, "Check that the log file is writable: "+runLog.Path())
		return
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handlers.RunImport(ctx, newCLIDeps(services, cfg), src, runLog)
}

// reviewRecords previews every record and asks the user whether to import.
// It reports false when the import should not go ahead.
func reviewRecords(services *service.Services, path string, opts reader.Options, cfg config.Config) bool {
	src, ok := openSource(path, opts)
	if !ok {
		return false
	}
	outcomes, err := services.Import.Preview(src)
	_ = src.Close()
	if err != nil {
		fail("Failed to read the input file", err, inputHint)
		return false
	}

	decision, err := deps.Review(outcomes, tui.Options{
		Input:  path,
		Theme:  cfg.Theme,
		DryRun: cfg.DryRun,
	})
	if err != nil {
		fail("Failed to run the review screen", err, "")
		return false
	}
	if decision != tui.DecisionSubmit {
		_, _ = fmt.Fprintln(deps.Stdout, "Import cancelled, nothing was logged.")
		return false
	}
	return true
}

// openSource opens the input file, reporting failures
func openSource(path string, opts reader.Options) (reader.Source, bool) {
	src, err := reader.Open(path, opts)
	if err != nil {
		fail("Failed to read the input file", err, inputHint)
		return nil, false
	}
	return src, true
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// commandContext returns the command's context, or Background when the
// command was not started through Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
