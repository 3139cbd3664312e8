package cli

import (
	"io"
	"os"

	"github.com/xolan/jira-worklog-import/internal/config"
	"github.com/xolan/jira-worklog-import/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	Services *service.Services
	Config   config.Config
}

// NewDeps creates a new Deps with the given services, writing to the process
// standard streams
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
	}
}
