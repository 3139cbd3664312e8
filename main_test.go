package main

import (
	"os"
	"testing"
)

func TestRun_ExecuteError(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"jira-worklog-import", "--unknownflag"}

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestRun_MissingFilename(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"jira-worklog-import"}

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 without a filename, got %d", code)
	}
}

// Cobra keeps flag values between runs, so --version goes after the error cases
func TestRun_Version(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"jira-worklog-import", "--version"}

	code := run()
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	originalExit := exitFunc
	originalArgs := os.Args
	defer func() {
		exitFunc = originalExit
		os.Args = originalArgs
	}()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}
	os.Args = []string{"jira-worklog-import", "--help"}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
