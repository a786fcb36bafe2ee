// Package state owns the expand/collapse state of a section's collapsed
// regions. The engine itself is stateless; this package holds the mutable
// set, hands out immutable snapshots for assembly, and publishes toggle
// events so views can react.
package state

import (
	"context"
	"sync"

	"github.com/statutedb/lawdiff/internal/diff"
	"github.com/statutedb/lawdiff/internal/pubsub"
)

const EventRegionToggled pubsub.EventType = "region_toggled"

// ToggleEvent describes one region's state change.
type ToggleEvent struct {
	SectionID string
	Region    int
	Expanded  bool
}

// Manager tracks which collapsed regions of one section are expanded.
// Methods are safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	sectionID string
	expanded  diff.ExpandedSet
	broker    *pubsub.Broker[ToggleEvent]
}

func NewManager(sectionID string) *Manager {
	return &Manager{
		sectionID: sectionID,
		expanded:  diff.ExpandedSet{},
		broker:    pubsub.NewBroker[ToggleEvent](),
	}
}

// Toggle flips one region's state and publishes the change. No other
// region is affected.
func (m *Manager) Toggle(region int) {
	m.mu.Lock()
	m.expanded = m.expanded.Toggle(region)
	expanded := m.expanded.Has(region)
	m.mu.Unlock()

	m.broker.Publish(EventRegionToggled, ToggleEvent{
		SectionID: m.sectionID,
		Region:    region,
		Expanded:  expanded,
	})
}

// ExpandAll expands regions 0 through n-1.
func (m *Manager) ExpandAll(n int) {
	m.mu.Lock()
	set := make(diff.ExpandedSet, n)
	for i := 0; i < n; i++ {
		set[i] = true
	}
	m.expanded = set
	m.mu.Unlock()
}

// Expand marks specific regions as expanded, leaving others untouched.
func (m *Manager) Expand(regions ...int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range regions {
		if !m.expanded.Has(r) {
			m.expanded = m.expanded.Toggle(r)
		}
	}
}

// Expanded returns the current state as a snapshot safe to hand to
// diff.Assemble; later toggles do not affect it.
func (m *Manager) Expanded() diff.ExpandedSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snapshot := make(diff.ExpandedSet, len(m.expanded))
	for k, v := range m.expanded {
		if v {
			snapshot[k] = true
		}
	}
	return snapshot
}

// Subscribe delivers toggle events until ctx is cancelled.
func (m *Manager) Subscribe(ctx context.Context) <-chan pubsub.Event[ToggleEvent] {
	return m.broker.Subscribe(ctx)
}

// Shutdown closes the event broker.
func (m *Manager) Shutdown() {
	m.broker.Shutdown()
}
