package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/jira-worklog-import/internal/cli/handlers"
	"github.com/xolan/jira-worklog-import/internal/timeutil"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Summarize the records of previous runs",
	Long: `Read the run log and summarize the records logged so far: runs, records per
status and hours per issue. Malformed lines are skipped with a warning.

The run log is the log_file setting, or --log-file.

Date filtering uses the work-log timestamp in the configured timezone:
  jira-worklog-import history --from 2024-03-01 --to 2024-03-31
  jira-worklog-import history --from 01/03/2024
  jira-worklog-import history --last 7

--last cannot be combined with --from or --to.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		showHistory(cmd)
	},
}

func init() {
	historyCmd.Flags().String("from", "", "Only records on or after this day (YYYY-MM-DD or DD/MM/YYYY)")
	historyCmd.Flags().String("to", "", "Only records on or before this day (YYYY-MM-DD or DD/MM/YYYY)")
	historyCmd.Flags().Int("last", 0, "Only records of the last N days, today included")
	rootCmd.AddCommand(historyCmd)
}

func showHistory(cmd *cobra.Command) {
	cfg, _, err := loadConfig(cmd.Flags())
	if err != nil {
		fail("Failed to load configuration", err, "Check config.toml, .env and the command-line flags")
		return
	}

	loc, err := timeutil.LoadLocation(cfg.DateTimezone)
	if err != nil {
		fail("Invalid timezone", err, "")
		return
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	last, _ := cmd.Flags().GetInt("last")
	period, err := timeutil.ParseRange(from, to, last, deps.Now(), loc)
	if err != nil {
		fail("Invalid date filter", err, "Use --from/--to with YYYY-MM-DD or DD/MM/YYYY, or --last N")
		return
	}

	handlers.ShowHistory(newCLIDeps(nil, cfg), cfg.LogFile, period)
}
