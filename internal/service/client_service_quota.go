// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/models"
)

// Usage thresholds, in percent of the quota.
const (
	StandardCleanupThreshold   = 60
	AggressiveCleanupThreshold = 80
	CriticalUsageThreshold     = 90

	// MaxHealthyQueueLength is the queue length above which the store is
	// reported unhealthy.
	MaxHealthyQueueLength = 100

	defaultMaxAge           = 30 * 24 * time.Hour
	transientMaxAge         = time.Hour
	defaultCompressionBytes = 4 << 10
	defaultQuotaInterval    = 10 * time.Minute
)

// cleanupCollections are evicted by age when synced.
var cleanupCollections = []string{
	models.CollectionHouseholdSize,
	models.CollectionManualOverride,
	models.CollectionShoppingList,
	models.CollectionRecipe,
	models.CollectionRecipeSearch,
}

// transientCollections hold derived data that is cheap to fetch again.
var transientCollections = []string{
	models.CollectionRecipeSearch,
}

type quotaGovernor struct {
	store                store.LocalStore
	maxAge               time.Duration
	compressionThreshold int
	interval             time.Duration
	now                  func() time.Time

	logger *logger.Logger
}

// NewQuotaGovernor builds a governor using the eviction settings of cfg and
// reconciling every interval when run as a worker.
func NewQuotaGovernor(localStore store.LocalStore, cfg config.ClientStorage, interval time.Duration, logger *logger.Logger) QuotaGovernor {
	g := &quotaGovernor{
		store:                localStore,
		maxAge:               cfg.MaxAge,
		compressionThreshold: cfg.CompressionThreshold,
		interval:             interval,
		now:                  time.Now,
		logger:               logger,
	}
	if g.maxAge <= 0 {
		g.maxAge = defaultMaxAge
	}
	if g.compressionThreshold <= 0 {
		g.compressionThreshold = defaultCompressionBytes
	}
	if g.interval <= 0 {
		g.interval = defaultQuotaInterval
	}
	return g
}

func (g *quotaGovernor) GetUsage(ctx context.Context) models.StorageUsage {
	usage, err := g.store.EstimateUsage(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "quotaGovernor.GetUsage").Msg("failed to estimate usage")
		return models.StorageUsage{}
	}
	return usage
}

func (g *quotaGovernor) Recommend(usage models.StorageUsage) models.CleanupLevel {
	switch {
	case usage.Percentage > AggressiveCleanupThreshold:
		return models.CleanupAggressive
	case usage.Percentage > StandardCleanupThreshold:
		return models.CleanupStandard
	}
	return models.CleanupNone
}

func (g *quotaGovernor) Cleanup(ctx context.Context, level models.CleanupLevel) (models.CleanupReport, error) {
	log := logger.FromContext(ctx)
	report := models.CleanupReport{Level: level}
	if level == models.CleanupNone {
		return report, nil
	}

	now := g.now()
	for _, collection := range cleanupCollections {
		n, err := g.store.DeleteSyncedOlderThan(ctx, collection, now.Add(-g.maxAge))
		if err != nil {
			log.Err(err).Str("func", "quotaGovernor.Cleanup").Str("collection", collection).Msg("failed to evict old entities")
			return report, fmt.Errorf("evict %s: %w", collection, err)
		}
		report.Evicted += n
	}

	if level == models.CleanupAggressive {
		for _, collection := range transientCollections {
			n, err := g.store.DeleteSyncedOlderThan(ctx, collection, now.Add(-transientMaxAge))
			if err != nil {
				log.Err(err).Str("func", "quotaGovernor.Cleanup").Str("collection", collection).Msg("failed to evict transient entities")
				return report, fmt.Errorf("evict %s: %w", collection, err)
			}
			report.Evicted += n
		}

		refs, err := g.store.ListUncompressedLarger(ctx, g.compressionThreshold)
		if err != nil {
			return report, fmt.Errorf("list compressible entities: %w", err)
		}
		for _, ref := range refs {
			changed, compressErr := g.store.Compress(ctx, ref.Collection, ref.ID)
			if compressErr != nil {
				log.Err(compressErr).
					Str("func", "quotaGovernor.Cleanup").
					Str("collection", ref.Collection).
					Str("id", ref.ID).
					Msg("failed to compress entity")
				continue
			}
			if changed {
				report.Compressed++
			}
		}
	}

	if report.Evicted > 0 || report.Compressed > 0 {
		if err := g.store.Vacuum(ctx); err != nil {
			log.Err(err).Str("func", "quotaGovernor.Cleanup").Msg("failed to vacuum store")
		}
	}

	log.Info().
		Str("func", "quotaGovernor.Cleanup").
		Str("level", level.String()).
		Int64("evicted", report.Evicted).
		Int("compressed", report.Compressed).
		Msg("cleanup finished")

	return report, nil
}

func (g *quotaGovernor) Reconcile(ctx context.Context) (models.CleanupReport, error) {
	return g.Cleanup(ctx, g.Recommend(g.GetUsage(ctx)))
}

func (g *quotaGovernor) GetHealth(ctx context.Context) models.StorageHealth {
	health := models.StorageHealth{IsHealthy: true}
	add := func(unhealthy bool, issue, recommendation string) {
		if unhealthy {
			health.IsHealthy = false
		}
		health.Issues = append(health.Issues, issue)
		health.Recommendations = append(health.Recommendations, recommendation)
	}

	if err := g.store.Initialized(ctx); err != nil {
		add(true, "local storage is not initialized", "restart the application")
		return health
	}

	usage := g.GetUsage(ctx)
	switch {
	case usage.Percentage > CriticalUsageThreshold:
		add(true,
			fmt.Sprintf("storage usage critical: %d%%", usage.Percentage),
			"run aggressive cleanup or clear cached data")
	case usage.Percentage >= AggressiveCleanupThreshold:
		add(false,
			fmt.Sprintf("storage usage high: %d%%", usage.Percentage),
			"run aggressive cleanup")
	}

	pending, err := g.store.CountQueue(ctx)
	if err != nil {
		add(true, "sync queue is unreadable", "restart the application")
		return health
	}
	if pending > MaxHealthyQueueLength {
		add(true,
			fmt.Sprintf("sync queue too long: %d pending changes", pending),
			"reconnect to sync pending changes")
	}

	return health
}

func (g *quotaGovernor) WithCleanup(ctx context.Context, write func(ctx context.Context) error) error {
	log := logger.FromContext(ctx)

	err := write(ctx)
	if !retryableWrite(err) {
		return err
	}

	for _, level := range []models.CleanupLevel{models.CleanupStandard, models.CleanupAggressive} {
		log.Warn().Err(err).
			Str("func", "quotaGovernor.WithCleanup").
			Str("level", level.String()).
			Msg("write failed, cleaning up storage")

		if _, cleanupErr := g.Cleanup(ctx, level); cleanupErr != nil {
			log.Err(cleanupErr).Str("func", "quotaGovernor.WithCleanup").Msg("cleanup failed")
		}
		if err = write(ctx); !retryableWrite(err) {
			return err
		}
	}

	log.Error().Err(err).Str("func", "quotaGovernor.WithCleanup").Msg("write failed after aggressive cleanup")
	return fmt.Errorf("%w: %w", ErrStorageFull, err)
}

// retryableWrite reports whether freeing space could make a failed write
// succeed.
func retryableWrite(err error) bool {
	if err == nil || errors.Is(err, store.ErrInvalidEntity) {
		return false
	}
	return store.IsStorageError(err)
}

func (g *quotaGovernor) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		if _, err := g.Reconcile(ctx); err != nil && ctx.Err() == nil {
			g.logger.Err(err).Str("func", "quotaGovernor.Run").Msg("reconcile failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
