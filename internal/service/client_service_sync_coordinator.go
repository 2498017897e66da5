// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/models"
)

// maxRecordedFailures bounds the failure list kept for the UI.
const maxRecordedFailures = 50

type syncCoordinator struct {
	store   store.LocalStore
	applier RemoteApplier
	conn    Connectivity
	now     func() time.Time

	running atomic.Bool

	mu          sync.Mutex
	failures    []models.SyncFailure
	subscribers map[int]chan models.SyncState
	nextSubID   int

	logger *logger.Logger
}

// NewSyncCoordinator builds a coordinator that applies queued changes through
// applier while conn reports the device online.
func NewSyncCoordinator(localStore store.LocalStore, applier RemoteApplier, conn Connectivity, logger *logger.Logger) SyncCoordinator {
	return newSyncCoordinator(localStore, applier, conn, logger)
}

func newSyncCoordinator(localStore store.LocalStore, applier RemoteApplier, conn Connectivity, logger *logger.Logger) *syncCoordinator {
	return &syncCoordinator{
		store:       localStore,
		applier:     applier,
		conn:        conn,
		now:         time.Now,
		subscribers: make(map[int]chan models.SyncState),
		logger:      logger,
	}
}

func (c *syncCoordinator) Flush(ctx context.Context) (models.FlushReport, error) {
	var report models.FlushReport
	log := logger.FromContext(ctx)

	if !c.conn.IsOnline() {
		return report, ErrOffline
	}
	if !c.running.CompareAndSwap(false, true) {
		return report, ErrSyncInProgress
	}
	defer func() {
		c.running.Store(false)
		c.Publish(context.WithoutCancel(ctx))
	}()
	c.Publish(ctx)

	if err := c.store.SetTime(ctx, store.KeyLastSyncAttempt, c.now()); err != nil {
		log.Err(err).Str("func", "syncCoordinator.Flush").Msg("failed to record sync attempt")
		return report, fmt.Errorf("record sync attempt: %w", err)
	}

	entries, err := c.store.ListQueue(ctx)
	if err != nil {
		log.Err(err).Str("func", "syncCoordinator.Flush").Msg("failed to list queue")
		return report, fmt.Errorf("list queue: %w", err)
	}

	interrupted := false
	for _, entry := range entries {
		if ctx.Err() != nil || !c.conn.IsOnline() {
			interrupted = true
			break
		}
		report.Attempted++
		c.flushEntry(ctx, entry, &report)
	}

	if interrupted {
		log.Info().
			Str("func", "syncCoordinator.Flush").
			Int("attempted", report.Attempted).
			Int("left", len(entries)-report.Attempted).
			Msg("flush interrupted")
		return report, nil
	}

	if report.Clean() {
		if err = c.store.SetTime(ctx, store.KeyLastSuccessfulSync, c.now()); err != nil {
			log.Err(err).Str("func", "syncCoordinator.Flush").Msg("failed to record successful sync")
		}
	}

	log.Debug().
		Str("func", "syncCoordinator.Flush").
		Int("attempted", report.Attempted).
		Int("succeeded", report.Succeeded).
		Int("retried", report.Retried).
		Int("dropped", report.Dropped).
		Int("superseded", report.Superseded).
		Msg("flush finished")

	return report, nil
}

func (c *syncCoordinator) flushEntry(ctx context.Context, entry models.SyncQueueEntry, report *models.FlushReport) {
	marked, err := c.store.MarkQueueEntryAttempted(ctx, entry.ID, entry.Seq)
	switch {
	case err != nil:
		logger.FromContext(ctx).Err(err).
			Str("func", "syncCoordinator.flushEntry").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Msg("failed to mark entry attempted")
		report.Retried++
		return
	case !marked:
		report.Superseded++
		return
	}
	entry.Attempted = true

	c.setStatus(ctx, entry, models.SyncStatusSyncing)

	result := c.applier.Apply(ctx, entry)
	switch result.Outcome {
	case models.OutcomeSuccess:
		c.onSuccess(ctx, entry, result, report)
	case models.OutcomePermanent:
		c.drop(ctx, entry, fmt.Errorf("%w: %w", ErrSyncRejected, result.Err), false, report)
	default:
		c.onRecoverable(ctx, entry, result, report)
	}
}

func (c *syncCoordinator) onSuccess(ctx context.Context, entry models.SyncQueueEntry, result models.ApplyResult, report *models.FlushReport) {
	log := logger.FromContext(ctx)

	removed, err := c.store.RemoveQueueEntry(ctx, entry.ID, entry.Seq)
	if err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.onSuccess").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Msg("failed to remove applied entry")
		c.setStatus(ctx, entry, models.SyncStatusPending)
		report.Retried++
		return
	}
	if !removed {
		c.setStatus(ctx, entry, models.SyncStatusPending)
		report.Superseded++
		return
	}
	report.Succeeded++

	// a local write that landed while the change was in flight is queued
	// behind it and must not be overwritten
	confirmed, err := c.store.ConfirmSynced(ctx, entry.Collection, entry.TargetID, store.PayloadHash(entry.Payload), result.Value)
	if err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.onSuccess").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Msg("failed to store server value")
		return
	}
	if !confirmed {
		log.Debug().
			Str("func", "syncCoordinator.onSuccess").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Msg("cached value changed while syncing")
	}
}

func (c *syncCoordinator) onRecoverable(ctx context.Context, entry models.SyncQueueEntry, result models.ApplyResult, report *models.FlushReport) {
	log := logger.FromContext(ctx)

	count, ok, err := c.store.IncrementRetry(ctx, entry.ID, entry.Seq)
	switch {
	case err != nil:
		log.Err(err).
			Str("func", "syncCoordinator.onRecoverable").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Msg("failed to count retry")
		c.setStatus(ctx, entry, models.SyncStatusPending)
		report.Retried++
		return
	case !ok:
		c.setStatus(ctx, entry, models.SyncStatusPending)
		report.Superseded++
		return
	}

	if count >= entry.MaxRetries {
		c.drop(ctx, entry, fmt.Errorf("%w after %d attempts: %w", ErrSyncExhausted, count, result.Err), true, report)
		return
	}

	log.Warn().Err(result.Err).
		Str("func", "syncCoordinator.onRecoverable").
		Str("collection", entry.Collection).
		Str("target_id", entry.TargetID).
		Int("retry_count", count).
		Msg("change will be retried")
	c.setStatus(ctx, entry, models.SyncStatusPending)
	report.Retried++
}

// drop removes entry from the queue and surfaces it as a failure. The cached
// value is kept and marked as errored.
func (c *syncCoordinator) drop(ctx context.Context, entry models.SyncQueueEntry, cause error, exhausted bool, report *models.FlushReport) {
	log := logger.FromContext(ctx)

	removed, err := c.store.RemoveQueueEntry(ctx, entry.ID, entry.Seq)
	if err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.drop").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Msg("failed to remove dropped entry")
		report.Retried++
		return
	}
	if !removed {
		c.setStatus(ctx, entry, models.SyncStatusPending)
		report.Superseded++
		return
	}

	log.Error().Err(cause).
		Str("func", "syncCoordinator.drop").
		Str("collection", entry.Collection).
		Str("target_id", entry.TargetID).
		Bool("exhausted", exhausted).
		Msg("change dropped")

	c.setStatus(ctx, entry, models.SyncStatusError)
	c.recordFailure(models.SyncFailure{
		Collection: entry.Collection,
		TargetID:   entry.TargetID,
		Reason:     cause.Error(),
		Exhausted:  exhausted,
		At:         c.now().UTC(),
	})
	report.Dropped++
}

func (c *syncCoordinator) setStatus(ctx context.Context, entry models.SyncQueueEntry, status models.SyncStatus) {
	if err := c.store.SetSyncStatus(ctx, entry.Collection, entry.TargetID, status); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "syncCoordinator.setStatus").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Str("status", string(status)).
			Msg("failed to update sync status")
	}
}

func (c *syncCoordinator) recordFailure(f models.SyncFailure) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.failures = append(c.failures, f)
	if over := len(c.failures) - maxRecordedFailures; over > 0 {
		c.failures = append([]models.SyncFailure(nil), c.failures[over:]...)
	}
}

func (c *syncCoordinator) Failures() []models.SyncFailure {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]models.SyncFailure(nil), c.failures...)
}

func (c *syncCoordinator) ClearFailures() {
	c.mu.Lock()
	c.failures = nil
	c.mu.Unlock()
}

func (c *syncCoordinator) Status(ctx context.Context) (models.SyncState, error) {
	state := models.SyncState{
		IsOnline:       c.conn.IsOnline(),
		SyncInProgress: c.running.Load(),
		Failures:       c.Failures(),
	}

	pending, err := c.store.CountQueue(ctx)
	if err != nil {
		return state, fmt.Errorf("count pending changes: %w", err)
	}
	state.PendingChanges = pending

	if state.LastSyncAttempt, err = c.store.GetTime(ctx, store.KeyLastSyncAttempt); err != nil {
		return state, fmt.Errorf("read last sync attempt: %w", err)
	}
	if state.LastSuccessfulSync, err = c.store.GetTime(ctx, store.KeyLastSuccessfulSync); err != nil {
		return state, fmt.Errorf("read last successful sync: %w", err)
	}

	return state, nil
}

func (c *syncCoordinator) Subscribe() (<-chan models.SyncState, func()) {
	ch := make(chan models.SyncState, 1)

	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			close(ch)
			c.mu.Unlock()
		})
	}
}

func (c *syncCoordinator) Publish(ctx context.Context) {
	state, err := c.Status(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncCoordinator.Publish").Msg("failed to build sync state")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.subscribers {
		select {
		case ch <- state:
			continue
		default:
		}
		// replace the stale state nobody has read yet
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- state:
		default:
		}
	}
}
