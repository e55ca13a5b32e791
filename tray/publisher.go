package tray

import (
	"fmt"
	"sync"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/menu"
)

// Surface displays menus. Replace must install spec as a whole.
type Surface interface {
	Replace(spec menu.Spec) error
}

// Publisher owns the live menu and serialises replacements.
type Publisher struct {
	mu         sync.Mutex
	surface    Surface
	current    menu.Spec
	published  bool
	generation uint64
}

// NewPublisher creates a publisher for surface.
func NewPublisher(surface Surface) *Publisher {
	return &Publisher{surface: surface}
}

// Publish installs spec. A spec equal to the live one is not re-installed.
// On failure the previous menu stays current.
func (p *Publisher) Publish(spec menu.Spec) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.published && p.current.Equal(spec) {
		common.LogDebug("Publisher: menu unchanged, generation %d kept", p.generation)
		return nil
	}

	if err := p.surface.Replace(spec); err != nil {
		return fmt.Errorf("%w: %w", common.ErrPublishFailed, err)
	}

	p.current = spec
	p.published = true
	p.generation++
	common.LogDebug("Publisher: installed generation %d (%d items)", p.generation, len(spec.Items))
	return nil
}

// Current returns the live menu and whether one has been published.
func (p *Publisher) Current() (menu.Spec, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.published
}

// Generation counts successful replacements.
func (p *Publisher) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}
