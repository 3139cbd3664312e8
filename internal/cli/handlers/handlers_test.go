package handlers

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/xolan/jira-worklog-import/internal/cli"
	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/runlog"
	"github.com/xolan/jira-worklog-import/internal/service"
)

// setupTestDeps creates dry-run deps backed by a temp directory, plus a run
// log writer in that directory
func setupTestDeps(t *testing.T) (*cli.Deps, *runlog.Writer, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	return setupDepsWithConfigPath(t, filepath.Join(t.TempDir(), "config.toml"))
}

// setupBrokenConfigDeps points the config path into a missing directory
func setupBrokenConfigDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, _, stdout, stderr, exitCode := setupDepsWithConfigPath(t, filepath.Join(t.TempDir(), "missing", "config.toml"))
	return deps, stdout, stderr, exitCode
}

func setupDepsWithConfigPath(t *testing.T, configPath string) (*cli.Deps, *runlog.Writer, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.DryRun = true
	cfg.LogFile = filepath.Join(tmpDir, "files", "import.log")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	log, err := runlog.Open(cfg.LogFile, stdout, cli.FormatRecord)
	if err != nil {
		t.Fatalf("failed to open run log: %v", err)
	}

	services, err := service.NewServices(configPath, cfg, nil, log, nil)
	if err != nil {
		t.Fatalf("failed to create services: %v", err)
	}

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Config:   cfg,
	}

	return deps, log, stdout, stderr, &exitCode
}
