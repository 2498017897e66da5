// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package network

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

func TestMonitor_SetNotifiesOnTransitionOnly(t *testing.T) {
	m := NewMonitor(nil, 0, false, logger.Nop())

	var calls []bool
	m.Subscribe(func(online bool) { calls = append(calls, online) })

	m.Set(false)
	m.Set(true)
	m.Set(true)
	m.Set(false)

	assert.Equal(t, []bool{true, false}, calls)
	assert.False(t, m.IsOnline())
}

func TestMonitor_ConcurrentSetDeliversInOrder(t *testing.T) {
	m := NewMonitor(nil, 0, false, logger.Nop())

	var (
		mu    sync.Mutex
		calls []bool
	)
	m.Subscribe(func(online bool) {
		mu.Lock()
		calls = append(calls, online)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				m.Set((i+j)%2 == 0)
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()

	require.NotEmpty(t, calls)
	// every notification is a transition, so consecutive ones alternate
	for i := 1; i < len(calls); i++ {
		require.NotEqual(t, calls[i-1], calls[i], "notification %d repeats the previous state", i)
	}
	assert.True(t, calls[0])
	assert.Equal(t, m.IsOnline(), calls[len(calls)-1])
}

func TestMonitor_Unsubscribe(t *testing.T) {
	m := NewMonitor(nil, 0, true, logger.Nop())

	var calls int
	unsubscribe := m.Subscribe(func(bool) { calls++ })
	m.Set(false)
	unsubscribe()
	unsubscribe()
	m.Set(true)

	assert.Equal(t, 1, calls)
}

func TestMonitor_CheckUsesProber(t *testing.T) {
	var fail atomic.Bool
	prober := ProberFunc(func(context.Context) error {
		if fail.Load() {
			return errors.New("connection refused")
		}
		return nil
	})

	m := NewMonitor(prober, 0, false, logger.Nop())

	assert.True(t, m.Check(context.Background()))
	assert.True(t, m.IsOnline())

	fail.Store(true)
	assert.False(t, m.Check(context.Background()))
	assert.False(t, m.IsOnline())
}

func TestMonitor_CheckIgnoresCancelledContext(t *testing.T) {
	prober := ProberFunc(func(ctx context.Context) error { return ctx.Err() })
	m := NewMonitor(prober, 0, true, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.True(t, m.Check(ctx))
	assert.True(t, m.IsOnline())
}

func TestMonitor_RunProbesPeriodically(t *testing.T) {
	var probes atomic.Int32
	prober := ProberFunc(func(context.Context) error {
		probes.Add(1)
		return nil
	})

	m := NewMonitor(prober, 10*time.Millisecond, false, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Eventually(t, func() bool { return probes.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, m.IsOnline())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
