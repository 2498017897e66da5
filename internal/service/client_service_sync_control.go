// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/models"
)

type syncControlService struct {
	store       store.EntityRepository
	queue       SyncQueue
	coordinator SyncCoordinator

	logger *logger.Logger
}

func newSyncControlService(entities store.EntityRepository, queue SyncQueue, coordinator SyncCoordinator, logger *logger.Logger) SyncControlService {
	return &syncControlService{
		store:       entities,
		queue:       queue,
		coordinator: coordinator,
		logger:      logger,
	}
}

func (s *syncControlService) GetPendingChangesCount(ctx context.Context) (int, error) {
	return s.queue.PendingCount(ctx)
}

// ForceSyncAttempt flushes right away. ErrOffline and ErrSyncInProgress are
// informational.
func (s *syncControlService) ForceSyncAttempt(ctx context.Context) (models.FlushReport, error) {
	return s.coordinator.Flush(ctx)
}

// ClearAllCachedData drops every cached value and pending change.
func (s *syncControlService) ClearAllCachedData(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "syncControlService.ClearAllCachedData").Msg("failed to clear local store")
		return fmt.Errorf("clear cached data: %w", err)
	}
	s.coordinator.ClearFailures()
	s.coordinator.Publish(ctx)

	return nil
}

func (s *syncControlService) Status(ctx context.Context) (models.SyncState, error) {
	return s.coordinator.Status(ctx)
}

func (s *syncControlService) Subscribe() (<-chan models.SyncState, func()) {
	return s.coordinator.Subscribe()
}
