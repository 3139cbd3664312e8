package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/jira-worklog-import/internal/cli"
	"github.com/xolan/jira-worklog-import/internal/runlog"
	"github.com/xolan/jira-worklog-import/internal/service"
)

// RunImport processes every record of src and appends the summary to the run log.
// Rejected records do not change the exit code; an unreadable input or an
// unwritable log does.
func RunImport(ctx context.Context, deps *cli.Deps, src service.RecordSource, log *runlog.Writer) {
	svc := deps.Services.Import

	result, err := svc.Run(ctx, src)
	if result != nil {
		summary := cli.FormatSummary(result.Statistics, result.Issues, svc.DryRun())
		if werr := log.WriteText(summary); werr != nil && err == nil {
			err = werr
		}
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrInputUnreadable):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read the input file")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the file format and the --format, --offset and --csv-delimiter flags")
		case errors.Is(err, context.Canceled):
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Import interrupted")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		default:
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Import aborted")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that the log file is writable: %s\n", log.Path())
		}
		deps.Exit(1)
	}
}
