package cmd

import (
	"github.com/spf13/cobra"
)

// reviewCmd represents the review command
var reviewCmd = &cobra.Command{
	Use:   "review <filename>",
	Short: "Review records interactively before importing",
	Long: `Normalize every record of the file and show the result in an interactive
screen before anything is submitted.

Records tab:
  - j/k or arrows: Move through the records
  - f: Cycle the filter (all, accepted, rejected)
  - /: Search by issue key or comment
  - s: Submit the accepted records (asks for confirmation)

Summary tab:
  - Totals and hours per issue, as the import would log them

Other keys:
  - Tab/Shift+Tab or 1-2: Switch tabs
  - t: Cycle the color theme
  - ?: Show help
  - q: Quit without importing

Same as: jira-worklog-import <filename> --review`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, args[0], true)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}
