// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

// Prober checks reachability of the remote API. A nil error means online.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc adapts a function to [Prober].
type ProberFunc func(ctx context.Context) error

func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// Listener receives the new connectivity state after each transition.
type Listener func(online bool)

// Monitor holds a binary online/offline signal. Listeners fire only on
// transitions, never for a repeated state.
type Monitor struct {
	online atomic.Bool

	// transitionMu orders state changes with their notifications
	transitionMu sync.Mutex

	mu        sync.Mutex
	listeners map[uint64]Listener
	nextID    uint64

	prober   Prober
	interval time.Duration
	logger   *logger.Logger
}

// NewMonitor builds a monitor starting in the given state. prober may be nil
// when connectivity is only ever set explicitly.
func NewMonitor(prober Prober, interval time.Duration, initiallyOnline bool, logger *logger.Logger) *Monitor {
	m := &Monitor{
		listeners: make(map[uint64]Listener),
		prober:    prober,
		interval:  interval,
		logger:    logger,
	}
	m.online.Store(initiallyOnline)
	return m
}

// IsOnline reports the last known connectivity state.
func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// Set records the connectivity state and notifies listeners if it changed.
// Transitions are delivered in the order they happen, so the last
// notification always matches IsOnline. Listeners must not call Set.
func (m *Monitor) Set(online bool) {
	m.transitionMu.Lock()
	defer m.transitionMu.Unlock()

	if m.online.Swap(online) == online {
		return
	}

	m.logger.Info().
		Str("func", "Monitor.Set").
		Bool("online", online).
		Msg("connectivity changed")

	m.mu.Lock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(online)
	}
}

// Subscribe registers l for transitions. The returned func unregisters it.
func (m *Monitor) Subscribe(l Listener) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Check probes once and records the result.
func (m *Monitor) Check(ctx context.Context) bool {
	if m.prober == nil {
		return m.IsOnline()
	}

	err := m.prober.Probe(ctx)
	if err != nil && ctx.Err() != nil {
		// shutting down, not a connectivity signal
		return m.IsOnline()
	}
	if err != nil {
		m.logger.Debug().Err(err).Str("func", "Monitor.Check").Msg("probe failed")
	}

	m.Set(err == nil)
	return err == nil
}

// Run probes on every interval tick until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if m.prober == nil || m.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
