package network

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/config"
)

// ClientState is the running state reported by the client's status command.
type ClientState int

const (
	// StateUnknown is any status text the tray does not recognise.
	StateUnknown ClientState = iota
	// StateNotRunning means the client service is stopped.
	StateNotRunning
	// StateOnline means the client is connected.
	StateOnline
	// StateOffline means the service runs but is not connected.
	StateOffline
	// StateAuthenticating means the client waits for a sign-in.
	StateAuthenticating
)

// String returns a human-readable representation of the client state.
func (s ClientState) String() string {
	switch s {
	case StateNotRunning:
		return "Not running"
	case StateOnline:
		return "Online"
	case StateOffline:
		return "Offline"
	case StateAuthenticating:
		return "Authenticating"
	default:
		return "Unknown"
	}
}

// Running reports whether the state implies a live client service.
func (s ClientState) Running() bool {
	return s != StateNotRunning
}

// ParseClientState maps the status command output to a ClientState.
func ParseClientState(output string) ClientState {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "not-running", "not running", "":
		return StateNotRunning
	case "online":
		return StateOnline
	case "offline":
		return StateOffline
	case "authenticating":
		return StateAuthenticating
	default:
		return StateUnknown
	}
}

// Provider fetches snapshots from the network client.
type Provider struct {
	runner   Runner
	client   string
	notifier string
}

// NewProvider creates a provider for the binaries named in cfg.
func NewProvider(runner Runner, cfg *config.Config) *Provider {
	return &Provider{
		runner:   runner,
		client:   cfg.ClientBinary,
		notifier: cfg.NotifierBinary,
	}
}

// State queries the client's running state. A status command that exits
// non-zero is read from its stdout, and an empty output counts as not
// running; only a client that cannot be invoked is an error.
func (p *Provider) State(ctx context.Context) (ClientState, error) {
	out, err := p.runner.Output(ctx, p.client, "status")
	if err != nil && !errors.Is(err, common.ErrProviderNonZeroExit) {
		return StateUnknown, err
	}
	return ParseClientState(string(out)), nil
}

// Fetch returns a fresh snapshot. When the client is not running a start
// command is launched without waiting for it, and the resource listing is
// queried regardless; a later call observes the started client.
func (p *Provider) Fetch(ctx context.Context) (*Snapshot, error) {
	state, err := p.State(ctx)
	if err != nil {
		return nil, err
	}

	if !state.Running() {
		common.LogInfo("Provider: %s is not running, starting it", p.client)
		if err := p.runner.Start(p.client, "start"); err != nil {
			common.LogWarn("Provider: could not start %s: %v", p.client, err)
		}
	}

	out, err := p.runner.Output(ctx, p.notifier, "resources")
	if err != nil {
		return nil, fmt.Errorf("listing resources: %w", err)
	}

	return ParseSnapshot(out)
}
