package cmd

import "fmt"

// fail prints an error block to stderr and exits with status 1.
// details and hint are omitted when empty.
func fail(message string, details error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", message)
	if details != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", details)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}
