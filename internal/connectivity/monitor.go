// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package connectivity tracks whether the remote store is reachable.
//
// The [Monitor] probes the backend on a fixed interval and moves between
// three states. A first successful probe moves it from offline to
// validating; a configured number of consecutive successes moves it to
// online and emits exactly one reachability [Event]. Any failed probe drops
// it back to offline without an event.
package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
)

// State is the reachability state of the remote store.
type State int

const (
	Offline State = iota
	Validating
	Online
)

func (s State) String() string {
	switch s {
	case Validating:
		return "validating"
	case Online:
		return "online"
	default:
		return "offline"
	}
}

// Event is emitted once per transition into [Online].
type Event struct {
	At time.Time
}

// Prober checks reachability of the remote store once.
type Prober interface {
	Probe(ctx context.Context) error
}

// Monitor is the reachability state machine.
type Monitor struct {
	prober   Prober
	interval time.Duration
	stable   int
	logger   *logger.Logger
	now      func() time.Time

	mu        sync.RWMutex
	state     State
	successes int

	events chan Event
}

// NewMonitor returns a Monitor in the [Offline] state. stableProbes below 1
// is treated as 1.
func NewMonitor(prober Prober, interval time.Duration, stableProbes int, log *logger.Logger) *Monitor {
	if stableProbes < 1 {
		stableProbes = 1
	}

	return &Monitor{
		prober:   prober,
		interval: interval,
		stable:   stableProbes,
		logger:   log,
		now:      time.Now,
		events:   make(chan Event, 1),
	}
}

// Events returns the channel of reachability events. The channel holds at
// most one undelivered event; a later event is dropped while one is pending.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Run probes immediately and then on every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	m.logger.Info().
		Dur("interval", m.interval).
		Int("stable_probes", m.stable).
		Msg("connectivity monitor started")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.probe(ctx)

		select {
		case <-ctx.Done():
			m.logger.Info().Msg("connectivity monitor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	err := m.prober.Probe(probeCtx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		m.logger.Debug().Err(err).Str("func", "Monitor.probe").Msg("probe failed")
	}
	m.observe(err == nil)
}

// observe advances the state machine by one probe result.
func (m *Monitor) observe(ok bool) {
	m.mu.Lock()
	prev := m.state

	if !ok {
		m.state = Offline
		m.successes = 0
	} else if m.state != Online {
		m.successes++
		if m.successes >= m.stable {
			m.state = Online
		} else {
			m.state = Validating
		}
	}

	cur := m.state
	m.mu.Unlock()

	if cur == prev {
		return
	}

	m.logger.Info().
		Str("from", prev.String()).
		Str("to", cur.String()).
		Msg("connectivity state changed")

	if cur == Online {
		select {
		case m.events <- Event{At: m.now()}:
		default:
		}
	}
}
