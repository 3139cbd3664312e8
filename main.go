package main

import (
	"os"
	_ "time/tzdata"

	"github.com/xolan/jira-worklog-import/cmd"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc terminates the process; tests replace it
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run executes the CLI and returns the process exit code
func run() int {
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
