// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-meal-planner/internal/adapter"
	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
	"github.com/MKhiriev/go-meal-planner/internal/validators"
)

type ClientServices struct {
	Queue       SyncQueue
	Coordinator SyncCoordinator
	SyncJob     ClientSyncJob
	Optimistic  OptimisticManager
	Quota       QuotaGovernor

	Preferences   PreferenceService
	ShoppingLists ShoppingListService
	Recipes       RecipeService
	SyncControl   SyncControlService
}

func NewClientServices(localStore store.LocalStore, serverAdapter adapter.ServerAdapter, conn Connectivity, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	ids := utils.NewUUIDGenerator()
	validator := validators.NewMealPlannerValidator()

	coordinator := newSyncCoordinator(localStore, adapter.NewQueueApplier(serverAdapter, logger), conn, logger)
	queue := newSyncQueue(localStore, ids, cfg.Workers.MaxRetries, logger)
	queue.onChange = coordinator.Publish

	syncJob := NewClientSyncJob(coordinator, conn, cfg.Workers.SyncInterval, logger)
	quota := NewQuotaGovernor(localStore, cfg.Storage, cfg.Workers.QuotaInterval, logger)
	optimistic := NewOptimisticManager(localStore, logger)

	writer := &deferredWriter{
		store:     localStore,
		queue:     queue,
		governor:  quota,
		conn:      conn,
		validator: validator,
		kick:      syncJob.Trigger,
	}

	return &ClientServices{
		Queue:         queue,
		Coordinator:   coordinator,
		SyncJob:       syncJob,
		Optimistic:    optimistic,
		Quota:         quota,
		Preferences:   newPreferenceService(writer, logger),
		ShoppingLists: newShoppingListService(writer, ids, logger),
		Recipes:       newRecipeService(localStore, serverAdapter, optimistic, validator, logger),
		SyncControl:   newSyncControlService(localStore, queue, coordinator, logger),
	}
}
