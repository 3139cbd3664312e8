// Package service provides the business logic layer of the importer:
// record normalization, the import driver loop and configuration access,
// shared by the CLI and the review TUI.
package service

import (
	"github.com/charmbracelet/log"
	"github.com/xolan/jira-worklog-import/internal/config"
)

// Services holds all service instances used by the application
type Services struct {
	Import *ImportService
	Config *ConfigService
}

// NewServices creates the services for one run from the resolved configuration.
// submitter may be nil when cfg.DryRun is set.
func NewServices(configPath string, cfg config.Config, submitter Submitter, sink RecordSink, logger *log.Logger) (*Services, error) {
	normalizer, err := NewNormalizerFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &Services{
		Import: NewImportService(normalizer, submitter, sink, logger, cfg.DryRun),
		Config: NewConfigService(configPath, cfg),
	}, nil
}
