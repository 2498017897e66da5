// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-meal-planner/internal/adapter"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/models"
)

func TestFlush_OfflineDoesNothing(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 5))

	report, err := env.coordinator.Flush(ctx)
	assert.ErrorIs(t, err, ErrOffline)
	assert.Equal(t, models.FlushReport{}, report)
	assert.Empty(t, env.applier.Calls())

	last, err := env.store.GetTime(ctx, store.KeyLastSyncAttempt)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestFlush_ConvergesAfterReconnect(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 5))
	require.NoError(t, env.preferences.CacheManualOverride(ctx, "mp1", "r1", intPtr(3)))
	list, err := env.shoppingLists.SaveShoppingList(ctx, models.ShoppingList{MealPlanID: "mp1"})
	require.NoError(t, err)

	env.monitor.Set(true)
	report, err := env.control.ForceSyncAttempt(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.FlushReport{Attempted: 3, Succeeded: 3}, report)
	assert.True(t, report.Clean())

	count, err := env.control.GetPendingChangesCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	for _, key := range []models.PendingKey{
		models.HouseholdSizeKey("u1"),
		models.ManualOverrideKey("mp1", "r1"),
		models.ShoppingListKey(list.ID),
	} {
		assert.Equal(t, models.SyncStatusSynced, env.entity(t, key.Collection, key.ID()).Metadata.SyncStatus, key.String())
	}

	state, err := env.control.Status(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsOnline)
	assert.False(t, state.SyncInProgress)
	require.NotNil(t, state.LastSyncAttempt)
	require.NotNil(t, state.LastSuccessfulSync)
	assert.Empty(t, state.Failures)
}

func TestFlush_AppliesInArrivalOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 2))
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u2", 3))
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 4))

	env.monitor.Set(true)
	_, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)

	calls := env.applier.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "u2", calls[0].TargetID)
	assert.Equal(t, "u1", calls[1].TargetID)
	assert.JSONEq(t, `{"user_id":"u1","household_size":4}`, string(calls[1].Payload))
}

func TestFlush_StoresServerValue(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	env.applier.result = func(models.SyncQueueEntry) models.ApplyResult {
		return models.Succeeded(json.RawMessage(`{"user_id":"u1","household_size":6}`))
	}

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 5))
	_, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)

	size, found, err := env.preferences.GetCachedHouseholdSize(ctx, "u1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 6, size)
	assert.Equal(t, models.SyncStatusSynced, env.entity(t, models.CollectionHouseholdSize, "u1").Metadata.SyncStatus)
}

func TestFlush_BoundedRetries(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	env.applier.result = func(models.SyncQueueEntry) models.ApplyResult {
		return models.Recoverable(adapter.ErrNetwork)
	}

	require.NoError(t, env.preferences.CacheManualOverride(ctx, "mp1", "r1", intPtr(4)))
	env.monitor.Set(true)
	key := models.ManualOverrideKey("mp1", "r1")

	for attempt := 1; attempt < models.DefaultMaxRetries; attempt++ {
		report, err := env.coordinator.Flush(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Retried)
		assert.False(t, report.Clean())

		entry, found, err := env.store.GetQueueEntry(ctx, key.Collection, key.ID())
		require.NoError(t, err)
		require.True(t, found, "entry dropped after %d attempts", attempt)
		assert.Equal(t, attempt, entry.RetryCount)
		assert.Equal(t, models.SyncStatusPending, env.entity(t, key.Collection, key.ID()).Metadata.SyncStatus)
	}

	report, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Dropped)

	_, found, err := env.store.GetQueueEntry(ctx, key.Collection, key.ID())
	require.NoError(t, err)
	assert.False(t, found)

	// the cached value outlives the dropped change
	servings, found, err := env.preferences.GetCachedManualOverride(ctx, "mp1", "r1")
	require.NoError(t, err)
	require.True(t, found)
	require.NotNil(t, servings)
	assert.Equal(t, 4, *servings)
	assert.Equal(t, models.SyncStatusError, env.entity(t, key.Collection, key.ID()).Metadata.SyncStatus)

	failures := env.coordinator.Failures()
	require.Len(t, failures, 1)
	assert.True(t, failures[0].Exhausted)
	assert.Equal(t, key.ID(), failures[0].TargetID)
	assert.Contains(t, failures[0].Reason, ErrSyncExhausted.Error())

	_, err = env.coordinator.Flush(ctx)
	require.NoError(t, err)
	assert.Len(t, env.applier.Calls(), models.DefaultMaxRetries)

	state, err := env.control.Status(ctx)
	require.NoError(t, err)
	assert.Len(t, state.Failures, 1)
}

func TestFlush_PermanentFailureDropsImmediately(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	env.applier.result = func(models.SyncQueueEntry) models.ApplyResult {
		return models.Permanent(adapter.ErrValidation)
	}

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 5))
	report, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.FlushReport{Attempted: 1, Dropped: 1}, report)
	count, err := env.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, models.SyncStatusError, env.entity(t, models.CollectionHouseholdSize, "u1").Metadata.SyncStatus)

	failures := env.coordinator.Failures()
	require.Len(t, failures, 1)
	assert.False(t, failures[0].Exhausted)
	assert.Contains(t, failures[0].Reason, adapter.ErrValidation.Error())

	env.coordinator.ClearFailures()
	assert.Empty(t, env.coordinator.Failures())
}

func TestFlush_SupersededEntryIsKept(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 5))

	first := true
	env.applier.result = func(models.SyncQueueEntry) models.ApplyResult {
		if first {
			first = false
			require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 8))
		}
		return models.Succeeded(nil)
	}

	report, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Superseded)

	pending, err := env.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.JSONEq(t, `{"user_id":"u1","household_size":8}`, string(pending[0].Payload))
	assert.Equal(t, models.SyncStatusPending, env.entity(t, models.CollectionHouseholdSize, "u1").Metadata.SyncStatus)

	report, err = env.coordinator.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)

	size, _, err := env.preferences.GetCachedHouseholdSize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 8, size)
}

func TestFlush_StopsWhenConnectionDrops(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 2))
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u2", 3))

	env.monitor.Set(true)
	env.applier.result = func(models.SyncQueueEntry) models.ApplyResult {
		env.monitor.Set(false)
		return models.Recoverable(adapter.ErrNetwork)
	}

	report, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Attempted)

	count, err := env.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFlush_NotReentrant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	env.applier.started = make(chan struct{}, 1)
	env.applier.release = make(chan struct{})

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 2))
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u2", 3))

	done := make(chan error, 1)
	go func() {
		_, err := env.control.ForceSyncAttempt(ctx)
		done <- err
	}()

	select {
	case <-env.applier.started:
	case <-time.After(2 * time.Second):
		t.Fatal("flush did not start")
	}

	for range 5 {
		_, err := env.control.ForceSyncAttempt(ctx)
		assert.ErrorIs(t, err, ErrSyncInProgress)
	}
	state, err := env.control.Status(ctx)
	require.NoError(t, err)
	assert.True(t, state.SyncInProgress)

	close(env.applier.release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), env.applier.maxInFlight.Load())
	assert.Len(t, env.applier.Calls(), 2)
}

func TestSubscribe_ReceivesLatestState(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	updates, cancel := env.control.Subscribe()

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 2))
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u2", 3))

	select {
	case state := <-updates:
		assert.Equal(t, 2, state.PendingChanges)
		assert.False(t, state.IsOnline)
	case <-time.After(time.Second):
		t.Fatal("no state published")
	}

	cancel()
	cancel()
	_, open := <-updates
	assert.False(t, open)

	// publishing after cancel must not panic
	env.coordinator.Publish(ctx)
}

func TestClearAllCachedData(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	env.applier.result = func(models.SyncQueueEntry) models.ApplyResult {
		return models.Permanent(errors.New("nope"))
	}

	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 2))
	_, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u2", 3))

	require.NoError(t, env.control.ClearAllCachedData(ctx))

	count, err := env.control.GetPendingChangesCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	_, found, err := env.preferences.GetCachedHouseholdSize(ctx, "u2")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, env.coordinator.Failures())
}

func changeTypes(entries []models.SyncQueueEntry) []models.ChangeType {
	types := make([]models.ChangeType, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.Type)
	}
	return types
}

func TestFlush_DeleteDuringCreateIsSent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	env.applier.started = make(chan struct{}, 1)
	env.applier.release = make(chan struct{})

	list, err := env.shoppingLists.SaveShoppingList(ctx, models.ShoppingList{MealPlanID: "mp1"})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, flushErr := env.coordinator.Flush(ctx)
		done <- flushErr
	}()

	select {
	case <-env.applier.started:
	case <-time.After(2 * time.Second):
		t.Fatal("flush did not start")
	}

	// the create is on its way to the server
	require.NoError(t, env.shoppingLists.DeleteShoppingList(ctx, list.ID))
	pending, err := env.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.ChangeDelete, pending[0].Type)

	close(env.applier.release)
	require.NoError(t, <-done)

	_, err = env.coordinator.Flush(ctx)
	require.NoError(t, err)

	assert.Equal(t, []models.ChangeType{models.ChangeCreate, models.ChangeDelete}, changeTypes(env.applier.Calls()))
	count, err := env.queue.PendingCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFlush_DeleteAfterFailedCreateIsSent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	env.applier.result = func(models.SyncQueueEntry) models.ApplyResult {
		// the server may have committed the create before the timeout
		return models.Recoverable(adapter.ErrNetwork)
	}

	list, err := env.shoppingLists.SaveShoppingList(ctx, models.ShoppingList{MealPlanID: "mp1"})
	require.NoError(t, err)
	_, err = env.coordinator.Flush(ctx)
	require.NoError(t, err)

	require.NoError(t, env.shoppingLists.DeleteShoppingList(ctx, list.ID))
	pending, err := env.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.ChangeDelete, pending[0].Type)
	assert.Zero(t, pending[0].RetryCount)

	env.applier.result = nil
	report, err := env.coordinator.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)

	assert.Equal(t, []models.ChangeType{models.ChangeCreate, models.ChangeDelete}, changeTypes(env.applier.Calls()))
}

// writeAfterRemoveStore runs write once, right after a queue entry has been
// removed by the coordinator.
type writeAfterRemoveStore struct {
	store.LocalStore
	write func()
}

func (s *writeAfterRemoveStore) RemoveQueueEntry(ctx context.Context, id string, seq int64) (bool, error) {
	removed, err := s.LocalStore.RemoveQueueEntry(ctx, id, seq)
	if s.write != nil {
		write := s.write
		s.write = nil
		write()
	}
	return removed, err
}

func TestFlush_ServerValueDoesNotOverwriteNewerWrite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	wrapped := &writeAfterRemoveStore{LocalStore: env.store}
	wrapped.write = func() {
		require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 8))
	}
	coordinator := newSyncCoordinator(wrapped, env.applier, env.monitor, logger.Nop())

	env.applier.result = func(entry models.SyncQueueEntry) models.ApplyResult {
		return models.Succeeded(json.RawMessage(`{"user_id":"u1","household_size":6}`))
	}
	require.NoError(t, env.preferences.CacheHouseholdSizeChange(ctx, "u1", 5))

	report, err := coordinator.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)

	size, _, err := env.preferences.GetCachedHouseholdSize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 8, size, "newer local write was overwritten")
	assert.Equal(t, models.SyncStatusPending, env.entity(t, models.CollectionHouseholdSize, "u1").Metadata.SyncStatus)

	pending, err := env.queue.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.JSONEq(t, `{"user_id":"u1","household_size":8}`, string(pending[0].Payload))

	env.applier.result = nil
	_, err = coordinator.Flush(ctx)
	require.NoError(t, err)

	size, _, err = env.preferences.GetCachedHouseholdSize(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 8, size)
	assert.Equal(t, models.SyncStatusSynced, env.entity(t, models.CollectionHouseholdSize, "u1").Metadata.SyncStatus)
}
