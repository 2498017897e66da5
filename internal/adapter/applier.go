// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/models"
)

// QueueApplier pushes queued changes to the server, one collection handler
// per kind of entity.
type QueueApplier struct {
	server ServerAdapter
	logger *logger.Logger
}

// NewQueueApplier builds a [QueueApplier] over server.
func NewQueueApplier(server ServerAdapter, logger *logger.Logger) *QueueApplier {
	return &QueueApplier{server: server, logger: logger}
}

// Apply sends entry to the server and tags the outcome. On success the
// result carries the server-confirmed value, or no value for deletions.
func (a *QueueApplier) Apply(ctx context.Context, entry models.SyncQueueEntry) models.ApplyResult {
	var (
		value any
		err   error
	)

	switch entry.Collection {
	case models.CollectionHouseholdSize:
		value, err = a.applyHouseholdSize(ctx, entry)
	case models.CollectionManualOverride:
		value, err = a.applyManualOverride(ctx, entry)
	case models.CollectionShoppingList:
		value, err = a.applyShoppingList(ctx, entry)
	default:
		err = fmt.Errorf("%w: unknown collection %q", ErrMalformedChange, entry.Collection)
	}

	if err != nil {
		result := Classify(err)
		a.logger.Debug().Err(err).
			Str("func", "QueueApplier.Apply").
			Str("collection", entry.Collection).
			Str("target_id", entry.TargetID).
			Str("outcome", result.Outcome.String()).
			Msg("remote apply failed")
		return result
	}

	if value == nil {
		return models.Succeeded(nil)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		// the server accepted the change; keep the local value
		return models.Succeeded(nil)
	}
	return models.Succeeded(raw)
}

func decodePayload(entry models.SyncQueueEntry, v any) error {
	if len(entry.Payload) == 0 {
		return fmt.Errorf("%w: %s %s has no payload", ErrMalformedChange, entry.Type, entry.Collection)
	}
	if err := json.Unmarshal(entry.Payload, v); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedChange, err)
	}
	return nil
}

func (a *QueueApplier) applyHouseholdSize(ctx context.Context, entry models.SyncQueueEntry) (any, error) {
	var hs models.HouseholdSize
	if err := decodePayload(entry, &hs); err != nil {
		return nil, err
	}
	return a.server.PutHouseholdSize(ctx, hs)
}

func (a *QueueApplier) applyManualOverride(ctx context.Context, entry models.SyncQueueEntry) (any, error) {
	var o models.ManualOverride
	if err := decodePayload(entry, &o); err != nil {
		return nil, err
	}

	if entry.Type == models.ChangeDelete || o.Servings == nil {
		return nil, alreadyGone(a.server.DeleteManualOverride(ctx, o.MealPlanID, o.RecipeID))
	}
	return a.server.PutManualOverride(ctx, o)
}

func (a *QueueApplier) applyShoppingList(ctx context.Context, entry models.SyncQueueEntry) (any, error) {
	var l models.ShoppingList
	if err := decodePayload(entry, &l); err != nil {
		return nil, err
	}

	switch entry.Type {
	case models.ChangeCreate:
		created, err := a.server.CreateShoppingList(ctx, l)
		if errors.Is(err, ErrConflict) {
			// an earlier attempt reached the server but its reply was lost
			return a.server.UpdateShoppingList(ctx, l)
		}
		return created, err
	case models.ChangeDelete:
		return nil, alreadyGone(a.server.DeleteShoppingList(ctx, l.ID))
	default:
		return a.server.UpdateShoppingList(ctx, l)
	}
}

// alreadyGone treats deleting something the server does not have as done.
func alreadyGone(err error) error {
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
