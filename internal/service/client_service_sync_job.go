// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

const (
	defaultSyncInterval    = 5 * time.Minute
	retryInitialInterval   = 2 * time.Second
	retryMaxInterval       = time.Minute
	retryBackoffMultiplier = 2
)

type clientSyncJob struct {
	coordinator SyncCoordinator
	conn        Connectivity
	interval    time.Duration
	newBackOff  func() backoff.BackOff

	trigger chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewClientSyncJob creates a job that flushes coordinator every interval, on
// every reconnect, on Trigger, and on a backoff schedule while recoverable
// failures remain. If interval is zero or negative it defaults to 5 minutes.
// The job is idle until Start is called.
func NewClientSyncJob(coordinator SyncCoordinator, conn Connectivity, interval time.Duration, logger *logger.Logger) ClientSyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	return &clientSyncJob{
		coordinator: coordinator,
		conn:        conn,
		interval:    interval,
		newBackOff:  newRetryBackOff,
		trigger:     make(chan struct{}, 1),
		logger:      logger,
	}
}

func newRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	b.Multiplier = retryBackoffMultiplier
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Start stops any previously running job, then launches the background
// goroutine. The goroutine exits when ctx is cancelled or Stop is called.
func (j *clientSyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	unsubscribe := j.conn.Subscribe(func(online bool) {
		j.coordinator.Publish(jobCtx)
		if online {
			j.Trigger()
		}
	})

	go func() {
		defer j.wg.Done()
		defer unsubscribe()
		j.loop(jobCtx)
	}()
}

func (j *clientSyncJob) loop(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	retry := j.newBackOff()
	var (
		retryTimer *time.Timer
		retryC     <-chan time.Time
	)
	stopRetry := func() {
		if retryTimer != nil {
			retryTimer.Stop()
		}
		retryTimer, retryC = nil, nil
	}
	defer stopRetry()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-j.trigger:
		case <-retryC:
			retryTimer, retryC = nil, nil
		}

		report, err := j.coordinator.Flush(ctx)
		switch {
		case errors.Is(err, ErrOffline), errors.Is(err, ErrSyncInProgress):
			continue
		case err != nil:
			j.logger.Err(err).Str("func", "clientSyncJob.loop").Msg("flush failed")
			continue
		}

		if report.Clean() {
			retry.Reset()
			stopRetry()
			continue
		}
		if retryC != nil {
			continue
		}

		next := retry.NextBackOff()
		if next == backoff.Stop {
			continue
		}
		j.logger.Debug().
			Str("func", "clientSyncJob.loop").
			Int("retried", report.Retried).
			Dur("next", next).
			Msg("retry flush scheduled")
		retryTimer = time.NewTimer(next)
		retryC = retryTimer.C
	}
}

func (j *clientSyncJob) Trigger() {
	select {
	case j.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the job is not running.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *clientSyncJob) Run(ctx context.Context) error {
	j.Start(ctx)
	<-ctx.Done()
	j.Stop()
	return nil
}
