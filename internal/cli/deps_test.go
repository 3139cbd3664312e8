package cli

import (
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/service"
)

func TestNewDeps(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DryRun = true
	services, err := service.NewServices(filepath.Join(t.TempDir(), "config.toml"), cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("failed to create services: %v", err)
	}

	deps := NewDeps(services, cfg)
	if deps == nil {
		t.Fatal("expected non-nil deps")
	}
	if deps.Services != services {
		t.Error("expected services to match")
	}
	if deps.Stdout == nil {
		t.Error("expected non-nil Stdout")
	}
	if deps.Stderr == nil {
		t.Error("expected non-nil Stderr")
	}
	if deps.Stdin == nil {
		t.Error("expected non-nil Stdin")
	}
	if deps.Exit == nil {
		t.Error("expected non-nil Exit")
	}
	if deps.Config.DateTimezone != cfg.DateTimezone {
		t.Errorf("Config.DateTimezone = %q, expected %q", deps.Config.DateTimezone, cfg.DateTimezone)
	}
}
