// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/network"
	"github.com/MKhiriev/go-meal-planner/models"
)

// spyCoordinator counts flushes and returns a fixed report.
type spyCoordinator struct {
	flushes   atomic.Int64
	publishes atomic.Int64
	report    models.FlushReport
	err       error
}

func (s *spyCoordinator) Flush(context.Context) (models.FlushReport, error) {
	s.flushes.Add(1)
	return s.report, s.err
}

func (s *spyCoordinator) Status(context.Context) (models.SyncState, error) {
	return models.SyncState{}, nil
}

func (s *spyCoordinator) Subscribe() (<-chan models.SyncState, func()) {
	ch := make(chan models.SyncState)
	return ch, func() {}
}

func (s *spyCoordinator) Publish(context.Context) {
	s.publishes.Add(1)
}

func (s *spyCoordinator) Failures() []models.SyncFailure { return nil }
func (s *spyCoordinator) ClearFailures()                 {}

func newTestJob(spy *spyCoordinator, monitor *network.Monitor, interval time.Duration) *clientSyncJob {
	return NewClientSyncJob(spy, monitor, interval, logger.Nop()).(*clientSyncJob)
}

func TestNewClientSyncJob_DefaultInterval(t *testing.T) {
	job := newTestJob(&spyCoordinator{}, network.NewMonitor(nil, 0, true, logger.Nop()), 0)
	assert.Equal(t, defaultSyncInterval, job.interval)
}

func TestClientSyncJob_Start_FlushesOnTicker(t *testing.T) {
	spy := &spyCoordinator{}
	job := newTestJob(spy, network.NewMonitor(nil, 0, true, logger.Nop()), 10*time.Millisecond)

	job.Start(context.Background())
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.flushes.Load(), int64(3))
}

func TestClientSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyCoordinator{}
	job := newTestJob(spy, network.NewMonitor(nil, 0, true, logger.Nop()), 10*time.Millisecond)

	job.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	afterStop := spy.flushes.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, afterStop, spy.flushes.Load())
}

func TestClientSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	job := newTestJob(&spyCoordinator{}, network.NewMonitor(nil, 0, true, logger.Nop()), time.Hour)
	assert.NotPanics(t, job.Stop)
}

func TestClientSyncJob_Trigger(t *testing.T) {
	spy := &spyCoordinator{}
	job := newTestJob(spy, network.NewMonitor(nil, 0, true, logger.Nop()), time.Hour)

	job.Start(context.Background())
	defer job.Stop()

	job.Trigger()
	job.Trigger()
	require.Eventually(t, func() bool { return spy.flushes.Load() >= 1 }, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_FlushesOnReconnect(t *testing.T) {
	spy := &spyCoordinator{}
	monitor := network.NewMonitor(nil, 0, false, logger.Nop())
	job := newTestJob(spy, monitor, time.Hour)

	job.Start(context.Background())
	defer job.Stop()

	monitor.Set(true)
	require.Eventually(t, func() bool { return spy.flushes.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), spy.publishes.Load())

	monitor.Set(false)
	require.Eventually(t, func() bool { return spy.publishes.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(1), spy.flushes.Load())
}

func TestClientSyncJob_RetriesWithBackoff(t *testing.T) {
	spy := &spyCoordinator{report: models.FlushReport{Attempted: 1, Retried: 1}}
	job := newTestJob(spy, network.NewMonitor(nil, 0, true, logger.Nop()), time.Hour)
	job.newBackOff = func() backoff.BackOff {
		return backoff.NewConstantBackOff(5 * time.Millisecond)
	}

	job.Start(context.Background())
	defer job.Stop()

	job.Trigger()
	require.Eventually(t, func() bool { return spy.flushes.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestClientSyncJob_CleanFlushSchedulesNoRetry(t *testing.T) {
	spy := &spyCoordinator{report: models.FlushReport{Attempted: 1, Succeeded: 1}}
	job := newTestJob(spy, network.NewMonitor(nil, 0, true, logger.Nop()), time.Hour)
	job.newBackOff = func() backoff.BackOff {
		return backoff.NewConstantBackOff(5 * time.Millisecond)
	}

	job.Start(context.Background())
	defer job.Stop()

	job.Trigger()
	require.Eventually(t, func() bool { return spy.flushes.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int64(1), spy.flushes.Load())
}

func TestClientSyncJob_Run_ReturnsOnCancel(t *testing.T) {
	job := newTestJob(&spyCoordinator{}, network.NewMonitor(nil, 0, true, logger.Nop()), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- job.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
}

func TestNewRetryBackOff_Grows(t *testing.T) {
	b := newRetryBackOff()
	first := b.NextBackOff()
	second := b.NextBackOff()

	assert.NotEqual(t, backoff.Stop, first)
	assert.LessOrEqual(t, first, retryMaxInterval)
	assert.LessOrEqual(t, second, retryMaxInterval)
}
