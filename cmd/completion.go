package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/reader"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for jira-worklog-import.

Completion covers subcommands, flags, input files (.json, .csv, .tsv, .txt,
.xlsx), --format values and common --date-timezone names.

Bash:
  source <(jira-worklog-import completion bash)
  jira-worklog-import completion bash > ~/.local/share/bash-completion/completions/jira-worklog-import

Zsh:
  jira-worklog-import completion zsh > "${fpath[1]}/_jira-worklog-import"

Fish:
  jira-worklog-import completion fish > ~/.config/fish/completions/jira-worklog-import.fish

PowerShell:
  jira-worklog-import completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

// inputExtensions are the file extensions offered for the filename argument
var inputExtensions = []string{"json", "csv", "tsv", "txt", "xlsx"}

// commonTimezones are offered for --date-timezone; any IANA name is accepted
var commonTimezones = []string{
	"America/Bogota",
	"America/Mexico_City",
	"America/New_York",
	"America/Sao_Paulo",
	"Europe/London",
	"Europe/Madrid",
	"UTC",
	"Local",
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// registerCompletions wires argument and flag completion; the import flags
// must already be registered
func registerCompletions() {
	rootCmd.ValidArgsFunction = completeInputFile
	reviewCmd.ValidArgsFunction = completeInputFile

	_ = rootCmd.RegisterFlagCompletionFunc("format", completeFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("date-timezone", completeTimezone)
	_ = rootCmd.RegisterFlagCompletionFunc("date-format", completeDateFormat)
}

func completeInputFile(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return inputExtensions, cobra.ShellCompDirectiveFilterFileExt
}

func completeFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	formats := []string{
		string(reader.FormatAuto),
		string(reader.FormatJSON),
		string(reader.FormatCSV),
		string(reader.FormatXLSX),
	}
	return filterPrefix(formats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeTimezone(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(commonTimezones, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func completeDateFormat(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix([]string{config.DefaultConfig().DateFormat, "Y-m-d H:i:s", "2006-01-02 15:04:05"}, toComplete),
		cobra.ShellCompDirectiveNoFileComp
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(strings.ToLower(v), strings.ToLower(prefix)) {
			out = append(out, v)
		}
	}
	return out
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(deps.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		fail(fmt.Sprintf("Failed to generate %s completion", shell), err, "")
		return
	}
}
