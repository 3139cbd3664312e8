package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/jira-worklog-import/internal/osutil"
)

func TestConfigCommand_ShowsDefaults(t *testing.T) {
	te := setupTestDeps(t, nil)

	configCmd.Run(te.newImportCommand(t, nil), nil)

	if te.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", te.exitCode, te.stderr.String())
	}
	out := te.stdout.String()
	for _, want := range []string{
		filepath.Join(te.dir, "config.toml"),
		"Using defaults",
		`date_timezone = "America/Bogota"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestConfigCommand_EnvAndFlagsApplied(t *testing.T) {
	te := setupTestDeps(t, osutil.MapEnv{"JIRA_PASS": "secret-token", "LIMIT": "20"})
	te.writeFile(t, "config.toml", "offset = 3\n")

	configCmd.Run(te.newImportCommand(t, map[string]string{"date-timezone": "Europe/Madrid"}), nil)

	out := te.stdout.String()
	for _, want := range []string{"File exists", "offset = 3", "limit = 20", `date_timezone = "Europe/Madrid"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
	if strings.Contains(out, "secret-token") {
		t.Errorf("token must be masked, got: %s", out)
	}
}

func TestConfigCommand_InvalidConfig(t *testing.T) {
	te := setupTestDeps(t, nil)
	te.writeFile(t, "config.toml", "offset = \"three\"\n")

	configCmd.Run(te.newImportCommand(t, nil), nil)

	if te.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", te.exitCode)
	}
	if !strings.Contains(te.stderr.String(), "Error: Failed to load configuration") {
		t.Errorf("expected configuration error, got: %s", te.stderr.String())
	}
}

func TestConfigCommand_ConfigPathError(t *testing.T) {
	te := setupTestDeps(t, nil)
	deps.ConfigPath = func() (string, error) {
		return "", errors.New("permission denied")
	}

	configCmd.Run(te.newImportCommand(t, nil), nil)

	if te.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", te.exitCode)
	}
	if !strings.Contains(te.stderr.String(), "permission denied") {
		t.Errorf("expected details in stderr, got: %s", te.stderr.String())
	}
}

func TestConfigInitCommand(t *testing.T) {
	te := setupTestDeps(t, nil)

	configInitCmd.Run(te.newImportCommand(t, nil), nil)

	if te.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", te.exitCode, te.stderr.String())
	}
	path := filepath.Join(te.dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if !strings.Contains(te.stdout.String(), "Created config file: "+path) {
		t.Errorf("unexpected output: %s", te.stdout.String())
	}

	te.stdout.Reset()
	configInitCmd.Run(te.newImportCommand(t, nil), nil)
	if te.exitCode != 1 {
		t.Errorf("expected exit code 1 when the file exists, got %d", te.exitCode)
	}
	if !strings.Contains(te.stderr.String(), "already exists") {
		t.Errorf("expected already exists error, got: %s", te.stderr.String())
	}
}

func TestConfigPathCommand(t *testing.T) {
	te := setupTestDeps(t, nil)
	custom := filepath.Join(te.dir, "elsewhere.toml")

	configPathCmd.Run(te.newImportCommand(t, map[string]string{"config": custom}), nil)

	if strings.TrimSpace(te.stdout.String()) != custom {
		t.Errorf("expected %q, got %q", custom, te.stdout.String())
	}
}

func TestHistoryCommand(t *testing.T) {
	te := setupTestDeps(t, nil)
	input := te.writeFile(t, "export.json", sampleExport)
	runImport(te.newImportCommand(t, map[string]string{"dry-run": "true"}), input, false)
	runImport(te.newImportCommand(t, map[string]string{"dry-run": "true"}), input, false)
	te.stdout.Reset()

	historyCmd.Run(te.newImportCommand(t, nil), nil)

	if te.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", te.exitCode, te.stderr.String())
	}
	out := te.stdout.String()
	for _, want := range []string{"Runs:    2 runs", "Processed: 4 records", "Rejected:  2", "BSP-9"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got: %s", want, out)
		}
	}
}

func TestHistoryCommand_NoLog(t *testing.T) {
	te := setupTestDeps(t, nil)

	historyCmd.Run(te.newImportCommand(t, nil), nil)

	if te.exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", te.exitCode)
	}
	if !strings.Contains(te.stdout.String(), "No records logged") {
		t.Errorf("expected empty history message, got: %s", te.stdout.String())
	}
}

func TestHistoryCommand_DateFilter(t *testing.T) {
	te := setupTestDeps(t, nil)
	input := te.writeFile(t, "export.json", sampleExport)
	runImport(te.newImportCommand(t, map[string]string{"dry-run": "true"}), input, false)

	tests := []struct {
		name  string
		flags map[string]string
		want  string
	}{
		{"matching day", map[string]string{"from": "2024-03-01", "to": "01/03/2024"}, "Processed: 2 records"},
		{"later days", map[string]string{"from": "2024-03-02"}, "No records logged"},
		{"last days from now", map[string]string{"last": "2"}, "Processed: 2 records"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			te.stdout.Reset()
			cmd := te.newImportCommand(t, nil)
			cmd.Flags().String("from", "", "")
			cmd.Flags().String("to", "", "")
			cmd.Flags().Int("last", 0, "")
			for name, value := range tt.flags {
				if err := cmd.Flags().Set(name, value); err != nil {
					t.Fatalf("failed to set --%s: %v", name, err)
				}
			}

			showHistory(cmd)

			if !strings.Contains(te.stdout.String(), tt.want) {
				t.Errorf("expected %q in output, got: %s", tt.want, te.stdout.String())
			}
		})
	}
}

func TestHistoryCommand_InvalidFilter(t *testing.T) {
	te := setupTestDeps(t, nil)
	cmd := te.newImportCommand(t, nil)
	cmd.Flags().Int("last", 0, "")
	cmd.Flags().String("from", "", "")
	_ = cmd.Flags().Set("last", "7")
	_ = cmd.Flags().Set("from", "2024-03-01")

	showHistory(cmd)

	if te.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", te.exitCode)
	}
	if !strings.Contains(te.stderr.String(), "cannot use --last with --from or --to") {
		t.Errorf("expected filter error, got: %s", te.stderr.String())
	}
}
