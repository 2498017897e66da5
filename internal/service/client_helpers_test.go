// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/network"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/internal/validators"
	"github.com/MKhiriev/go-meal-planner/models"
)

func newTestLocalStore(t *testing.T) store.LocalStore {
	t.Helper()

	s, err := store.NewClientStorages(context.Background(), config.ClientStorage{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s.Store
}

// seqIDs hands out predictable identifiers.
type seqIDs struct {
	n atomic.Int64
}

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}

// recordingApplier records every apply and tracks how many run at once.
type recordingApplier struct {
	mu    sync.Mutex
	calls []models.SyncQueueEntry

	result func(entry models.SyncQueueEntry) models.ApplyResult

	started chan struct{}
	release chan struct{}

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (a *recordingApplier) Apply(_ context.Context, entry models.SyncQueueEntry) models.ApplyResult {
	n := a.inFlight.Add(1)
	defer a.inFlight.Add(-1)
	for {
		m := a.maxInFlight.Load()
		if n <= m || a.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}

	a.mu.Lock()
	a.calls = append(a.calls, entry)
	a.mu.Unlock()

	if a.started != nil {
		select {
		case a.started <- struct{}{}:
		default:
		}
	}
	if a.release != nil {
		<-a.release
	}

	if a.result == nil {
		return models.Succeeded(nil)
	}
	return a.result(entry)
}

func (a *recordingApplier) Calls() []models.SyncQueueEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.SyncQueueEntry(nil), a.calls...)
}

type testEnv struct {
	store       store.LocalStore
	monitor     *network.Monitor
	applier     *recordingApplier
	queue       *syncQueue
	coordinator *syncCoordinator
	quota       QuotaGovernor

	preferences   PreferenceService
	shoppingLists ShoppingListService
	control       SyncControlService
}

func newTestEnv(t *testing.T, online bool) *testEnv {
	t.Helper()

	env := &testEnv{
		store:   newTestLocalStore(t),
		monitor: network.NewMonitor(nil, 0, online, logger.Nop()),
		applier: &recordingApplier{},
	}
	env.coordinator = newSyncCoordinator(env.store, env.applier, env.monitor, logger.Nop())
	env.queue = newSyncQueue(env.store, &seqIDs{}, models.DefaultMaxRetries, logger.Nop())
	env.queue.onChange = env.coordinator.Publish
	env.quota = NewQuotaGovernor(env.store, config.ClientStorage{}, time.Hour, logger.Nop())

	writer := &deferredWriter{
		store:     env.store,
		queue:     env.queue,
		governor:  env.quota,
		conn:      env.monitor,
		validator: validators.NewMealPlannerValidator(),
	}
	env.preferences = newPreferenceService(writer, logger.Nop())
	env.shoppingLists = newShoppingListService(writer, &seqIDs{}, logger.Nop())
	env.control = newSyncControlService(env.store, env.queue, env.coordinator, logger.Nop())

	return env
}

func (e *testEnv) entity(t *testing.T, collection, id string) models.StoredEntity {
	t.Helper()

	got, found, err := e.store.Get(context.Background(), collection, id)
	require.NoError(t, err)
	require.True(t, found, "entity %s/%s not cached", collection, id)
	return got
}

func intPtr(v int) *int {
	return &v
}
