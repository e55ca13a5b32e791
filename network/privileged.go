package network

import (
	"fmt"
	"os/exec"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/config"
)

// Privileged launches client subcommands that need elevated rights.
type Privileged struct {
	runner    Runner
	client    string
	elevation string
	lookPath  func(string) (string, error)
}

// NewPrivileged creates an executor wrapping the client binary of cfg in its
// elevation command.
func NewPrivileged(runner Runner, cfg *config.Config) *Privileged {
	return &Privileged{
		runner:    runner,
		client:    cfg.ClientBinary,
		elevation: cfg.ElevationCommand,
		lookPath:  exec.LookPath,
	}
}

// Stop stops the client service. Fire-and-forget.
func (p *Privileged) Stop() error {
	return p.launch("stop")
}

// Authenticate starts the client's auth flow for the named resource.
// Fire-and-forget.
func (p *Privileged) Authenticate(resourceName string) error {
	if resourceName == "" {
		return fmt.Errorf("%w: empty resource name", common.ErrResourceNotFound)
	}
	return p.launch("auth", resourceName)
}

func (p *Privileged) launch(args ...string) error {
	if p.elevation == "" {
		return p.runner.Start(p.client, args...)
	}

	if _, err := p.lookPath(p.elevation); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrElevationUnavailable, p.elevation, err)
	}
	return p.runner.Start(p.elevation, append([]string{p.client}, args...)...)
}
