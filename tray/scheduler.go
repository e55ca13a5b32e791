package tray

import (
	"context"
	"sync"
	"time"

	"github.com/yllada/twingate-tray/common"
	"github.com/yllada/twingate-tray/menu"
	"github.com/yllada/twingate-tray/network"
)

// StatusProvider fetches a fresh snapshot from the network client.
type StatusProvider interface {
	Fetch(ctx context.Context) (*network.Snapshot, error)
}

// MenuBuilder renders a snapshot as a menu.
type MenuBuilder interface {
	Build(snap *network.Snapshot, now time.Time) menu.Spec
}

// RefreshResult describes one completed tick.
type RefreshResult struct {
	Snapshot *network.Snapshot
	// Err is the fetch or publish failure, nil on success.
	Err error
}

// Scheduler refreshes the menu on a fixed cadence.
type Scheduler struct {
	provider  StatusProvider
	builder   MenuBuilder
	publisher *Publisher
	interval  time.Duration
	now       func() time.Time
	trigger   chan struct{}

	mu        sync.RWMutex
	onRefresh func(RefreshResult)
}

// NewScheduler creates a scheduler ticking every interval.
func NewScheduler(provider StatusProvider, builder MenuBuilder, publisher *Publisher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = common.RefreshInterval
	}
	return &Scheduler{
		provider:  provider,
		builder:   builder,
		publisher: publisher,
		interval:  interval,
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
	}
}

// SetOnRefresh sets a callback invoked after every tick.
func (s *Scheduler) SetOnRefresh(callback func(RefreshResult)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = callback
}

// Interval returns the refresh cadence.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Trigger requests a refresh ahead of the next tick. Requests made while one
// is pending are coalesced. It never blocks.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes immediately and then every interval until ctx is cancelled.
// A failed tick leaves the previous menu in place; there is no backoff.
func (s *Scheduler) Run(ctx context.Context) {
	common.LogInfo("Scheduler started (interval: %v)", s.interval)
	defer common.LogInfo("Scheduler stopped")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		case <-s.trigger:
			s.Refresh(ctx)
		}
	}
}

// Refresh performs one fetch, build and publish cycle.
func (s *Scheduler) Refresh(ctx context.Context) RefreshResult {
	result := s.refresh(ctx)

	s.mu.RLock()
	callback := s.onRefresh
	s.mu.RUnlock()
	if callback != nil {
		callback(result)
	}
	return result
}

func (s *Scheduler) refresh(ctx context.Context) RefreshResult {
	snap, err := s.provider.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			common.LogWarn("Refresh skipped, keeping previous menu: %v", err)
		}
		return RefreshResult{Err: err}
	}

	spec := s.builder.Build(snap, s.now())
	if err := s.publisher.Publish(spec); err != nil {
		common.LogError("Refresh could not publish menu: %v", err)
		return RefreshResult{Snapshot: snap, Err: err}
	}

	common.LogDebug("Refreshed menu with %d resources", len(snap.Resources))
	return RefreshResult{Snapshot: snap}
}
