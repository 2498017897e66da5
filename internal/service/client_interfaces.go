// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"

	"github.com/MKhiriev/go-meal-planner/internal/network"
	"github.com/MKhiriev/go-meal-planner/models"
)

// RemoteApplier pushes one queued change to the server and tags the result.
type RemoteApplier interface {
	Apply(ctx context.Context, entry models.SyncQueueEntry) models.ApplyResult
}

// ApplierFunc adapts a function to [RemoteApplier].
type ApplierFunc func(ctx context.Context, entry models.SyncQueueEntry) models.ApplyResult

func (f ApplierFunc) Apply(ctx context.Context, entry models.SyncQueueEntry) models.ApplyResult {
	return f(ctx, entry)
}

// Connectivity is the part of the network monitor the sync layer needs.
type Connectivity interface {
	IsOnline() bool
	Subscribe(l network.Listener) (unsubscribe func())
}

// SyncQueue holds one pending change per logical key.
type SyncQueue interface {
	// Enqueue records what key should become. An existing entry for key is
	// replaced and moves to the back of the queue. It returns the stored
	// entry, or nil when the change cancelled out the pending one.
	Enqueue(ctx context.Context, key models.PendingKey, changeType models.ChangeType, desired json.RawMessage) (*models.SyncQueueEntry, error)

	// Pending lists entries in arrival order.
	Pending(ctx context.Context) ([]models.SyncQueueEntry, error)

	// PendingCount is the number of keys with a pending change.
	PendingCount(ctx context.Context) (int, error)
}

// SyncCoordinator drains the queue against the server.
type SyncCoordinator interface {
	// Flush applies every queued change once, in arrival order. It returns
	// [ErrOffline] or [ErrSyncInProgress] without doing anything when the
	// device is offline or another flush runs.
	Flush(ctx context.Context) (models.FlushReport, error)

	// Status builds the current sync state.
	Status(ctx context.Context) (models.SyncState, error)

	// Subscribe returns a channel receiving the sync state after each
	// change. Slow readers only see the latest state. cancel closes the
	// channel.
	Subscribe() (updates <-chan models.SyncState, cancel func())

	// Publish pushes the current state to subscribers.
	Publish(ctx context.Context)

	// Failures lists changes dropped since the last ClearFailures.
	Failures() []models.SyncFailure
	ClearFailures()
}

// ClientSyncJob triggers flushes on a timer, on reconnect, on demand and on
// a backoff schedule after recoverable failures.
type ClientSyncJob interface {
	// Start launches the background goroutine. Any previous run is stopped.
	Start(ctx context.Context)

	// Stop cancels the goroutine and waits for it to exit.
	Stop()

	// Trigger asks for a flush as soon as possible. It never blocks.
	Trigger()

	// Run starts the job and blocks until ctx is done.
	Run(ctx context.Context) error
}

// FetchFunc reads the canonical value of an entity from the server.
type FetchFunc func(ctx context.Context) (json.RawMessage, error)

// Mutation is an optimistic edit of one entity.
type Mutation struct {
	Collection string
	ID         string

	// Apply computes the optimistic payload. current is nil when nothing is
	// cached yet.
	Apply func(current *models.StoredEntity) (json.RawMessage, error)

	// Remote performs the edit on the server and returns the canonical value.
	// An empty value keeps the optimistic payload.
	Remote FetchFunc

	// Settle re-reads the entity after the edit, successful or not. Nil
	// skips the reconciliation read.
	Settle FetchFunc

	// Invalidates lists collections dropped after the edit because they may
	// embed the entity (search results, lists).
	Invalidates []string
}

// OptimisticManager applies request/response edits locally first and
// reconciles them with the server.
type OptimisticManager interface {
	// Mutate applies m optimistically. On remote failure the cached entity is
	// restored exactly and the remote error is returned.
	Mutate(ctx context.Context, m Mutation) (models.StoredEntity, error)

	// Fetch reads an entity from the server and caches it, unless a mutation
	// started after the read was issued.
	Fetch(ctx context.Context, collection, id string, fetch FetchFunc) (models.StoredEntity, error)
}

// QuotaGovernor keeps the local store inside its quota.
type QuotaGovernor interface {
	// GetUsage never fails: an unreadable quota reads as {0,0,0}.
	GetUsage(ctx context.Context) models.StorageUsage
	Recommend(usage models.StorageUsage) models.CleanupLevel
	Cleanup(ctx context.Context, level models.CleanupLevel) (models.CleanupReport, error)

	// Reconcile measures usage and runs the recommended cleanup.
	Reconcile(ctx context.Context) (models.CleanupReport, error)
	GetHealth(ctx context.Context) models.StorageHealth

	// WithCleanup runs write, and on a storage error retries it after a
	// standard and then an aggressive cleanup.
	WithCleanup(ctx context.Context, write func(ctx context.Context) error) error

	// Run reconciles on every interval tick until ctx is done.
	Run(ctx context.Context) error
}

// PreferenceService caches scalar preferences and queues them for sync.
type PreferenceService interface {
	CacheHouseholdSizeChange(ctx context.Context, userID string, size int) error
	GetCachedHouseholdSize(ctx context.Context, userID string) (int, bool, error)

	// CacheManualOverride stores a serving override; nil servings resets it.
	CacheManualOverride(ctx context.Context, mealPlanID, recipeID string, servings *int) error
	GetCachedManualOverride(ctx context.Context, mealPlanID, recipeID string) (*int, bool, error)
}

// ShoppingListService keeps shopping lists usable offline.
type ShoppingListService interface {
	// SaveShoppingList assigns an ID to a new list.
	SaveShoppingList(ctx context.Context, list models.ShoppingList) (models.ShoppingList, error)
	GetShoppingList(ctx context.Context, listID string) (models.ShoppingList, bool, error)
	ListShoppingLists(ctx context.Context) ([]models.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, listID string) error
}

// RecipeService edits recipes through the optimistic manager.
type RecipeService interface {
	// GetRecipe returns the server copy when reachable, else the cached one.
	GetRecipe(ctx context.Context, recipeID string) (models.Recipe, error)
	CachedRecipe(ctx context.Context, recipeID string) (models.Recipe, bool, error)
	UpdateRecipeTitle(ctx context.Context, recipeID, title string) (models.Recipe, error)
}

// SyncControlService is what the UI layer calls about sync itself.
type SyncControlService interface {
	GetPendingChangesCount(ctx context.Context) (int, error)
	ForceSyncAttempt(ctx context.Context) (models.FlushReport, error)
	ClearAllCachedData(ctx context.Context) error
	Status(ctx context.Context) (models.SyncState, error)
	Subscribe() (<-chan models.SyncState, func())
}
