package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/jira-worklog-import/internal/cli"
	"github.com/xolan/jira-worklog-import/internal/cli/handlers"
	"github.com/xolan/jira-worklog-import/internal/service"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the effective configuration: defaults, then config.toml, then .env
and the environment, then flags. The Jira token is masked.

The importer works without a config file. Defaults:
  - date_format: ATOM (2006-01-02T15:04:05-07:00)
  - date_timezone: America/Bogota
  - csv_delimiter: ","
  - offset: 1 (header row), limit: 1000

Examples:
  jira-worklog-import config          Show the effective configuration
  jira-worklog-import config init     Create a sample config.toml
  jira-worklog-import config path     Print the config file location

Configuration file location:
  ~/.config/jira-worklog-import/config.toml          Linux
  ~/Library/Application Support/jira-worklog-import  macOS
  %APPDATA%\jira-worklog-import\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if d, ok := configDeps(cmd); ok {
			handlers.ShowConfig(d)
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if d, ok := configDeps(cmd); ok {
			handlers.InitConfig(d)
		}
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if d, ok := configDeps(cmd); ok {
			handlers.ShowConfigPath(d)
		}
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configDeps resolves the configuration and wraps it for the config handlers
func configDeps(cmd *cobra.Command) (*cli.Deps, bool) {
	cfg, path, err := loadConfig(cmd.Flags())
	if err != nil {
		fail("Failed to load configuration", err, "Check that config.toml is valid TOML and that .env values are valid")
		return nil, false
	}
	services := &service.Services{Config: service.NewConfigService(path, cfg)}
	return newCLIDeps(services, cfg), true
}
