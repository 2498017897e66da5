// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/mock"
	"github.com/MKhiriev/go-meal-planner/models"
)

func newTestApplier(t *testing.T) (*QueueApplier, *mock.MockServerAdapter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	return NewQueueApplier(server, logger.Nop()), server
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestQueueApplier_HouseholdSizeSuccess(t *testing.T) {
	a, server := newTestApplier(t)
	ctx := context.Background()

	desired := models.HouseholdSize{UserID: "u1", HouseholdSize: 5}
	server.EXPECT().PutHouseholdSize(ctx, desired).Return(desired, nil)

	res := a.Apply(ctx, models.SyncQueueEntry{
		Collection: models.CollectionHouseholdSize,
		TargetID:   "u1",
		Type:       models.ChangeUpdate,
		Payload:    mustJSON(t, desired),
	})

	require.Equal(t, models.OutcomeSuccess, res.Outcome)
	assert.JSONEq(t, string(mustJSON(t, desired)), string(res.Value))
}

func TestQueueApplier_ManualOverrideResetDeletes(t *testing.T) {
	a, server := newTestApplier(t)
	ctx := context.Background()

	server.EXPECT().DeleteManualOverride(ctx, "mp1", "r1").Return(nil)

	res := a.Apply(ctx, models.SyncQueueEntry{
		Collection: models.CollectionManualOverride,
		TargetID:   "mp1/r1",
		Type:       models.ChangeDelete,
		Payload:    mustJSON(t, models.ManualOverride{MealPlanID: "mp1", RecipeID: "r1"}),
	})

	assert.Equal(t, models.OutcomeSuccess, res.Outcome)
	assert.Nil(t, res.Value)
}

func TestQueueApplier_ManualOverrideRecoverable(t *testing.T) {
	a, server := newTestApplier(t)
	ctx := context.Background()

	servings := 2
	o := models.ManualOverride{MealPlanID: "mp1", RecipeID: "r1", Servings: &servings}
	server.EXPECT().PutManualOverride(ctx, gomock.Any()).
		Return(models.ManualOverride{}, fmt.Errorf("put: %w", ErrServer))

	res := a.Apply(ctx, models.SyncQueueEntry{
		Collection: models.CollectionManualOverride,
		Type:       models.ChangeUpdate,
		Payload:    mustJSON(t, o),
	})

	assert.Equal(t, models.OutcomeRecoverable, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrServer)
}

func TestQueueApplier_ShoppingListByType(t *testing.T) {
	a, server := newTestApplier(t)
	ctx := context.Background()
	list := models.ShoppingList{ID: "l1", Categories: map[string][]models.ShoppingItem{"dairy": {{Name: "milk"}}}}

	gomock.InOrder(
		server.EXPECT().CreateShoppingList(ctx, list).Return(list, nil),
		server.EXPECT().UpdateShoppingList(ctx, list).Return(list, nil),
		server.EXPECT().DeleteShoppingList(ctx, "l1").Return(fmt.Errorf("delete: %w", ErrOwnership)),
	)

	entry := models.SyncQueueEntry{Collection: models.CollectionShoppingList, Payload: mustJSON(t, list)}

	entry.Type = models.ChangeCreate
	assert.Equal(t, models.OutcomeSuccess, a.Apply(ctx, entry).Outcome)

	entry.Type = models.ChangeUpdate
	assert.Equal(t, models.OutcomeSuccess, a.Apply(ctx, entry).Outcome)

	entry.Type = models.ChangeDelete
	res := a.Apply(ctx, entry)
	assert.Equal(t, models.OutcomePermanent, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrOwnership)
}

func TestQueueApplier_ShoppingListCreateConflictUpdates(t *testing.T) {
	a, server := newTestApplier(t)
	ctx := context.Background()
	list := models.ShoppingList{ID: "l1", Categories: map[string][]models.ShoppingItem{}}
	canonical := list
	canonical.MealPlanID = "mp1"

	gomock.InOrder(
		server.EXPECT().CreateShoppingList(ctx, list).Return(models.ShoppingList{}, fmt.Errorf("create: %w", ErrConflict)),
		server.EXPECT().UpdateShoppingList(ctx, list).Return(canonical, nil),
	)

	res := a.Apply(ctx, models.SyncQueueEntry{Collection: models.CollectionShoppingList, Type: models.ChangeCreate, Payload: mustJSON(t, list)})
	require.Equal(t, models.OutcomeSuccess, res.Outcome)
	assert.JSONEq(t, string(mustJSON(t, canonical)), string(res.Value))
}

func TestQueueApplier_DeleteOfMissingIsDone(t *testing.T) {
	a, server := newTestApplier(t)
	ctx := context.Background()

	server.EXPECT().DeleteShoppingList(ctx, "l1").Return(fmt.Errorf("delete: %w", ErrNotFound))
	server.EXPECT().DeleteManualOverride(ctx, "mp1", "r1").Return(fmt.Errorf("delete: %w", ErrNotFound))

	res := a.Apply(ctx, models.SyncQueueEntry{
		Collection: models.CollectionShoppingList,
		Type:       models.ChangeDelete,
		Payload:    mustJSON(t, models.ShoppingList{ID: "l1"}),
	})
	assert.Equal(t, models.OutcomeSuccess, res.Outcome)

	res = a.Apply(ctx, models.SyncQueueEntry{
		Collection: models.CollectionManualOverride,
		Type:       models.ChangeUpdate,
		Payload:    mustJSON(t, models.ManualOverride{MealPlanID: "mp1", RecipeID: "r1"}),
	})
	assert.Equal(t, models.OutcomeSuccess, res.Outcome)
}

func TestQueueApplier_MalformedIsPermanent(t *testing.T) {
	a, _ := newTestApplier(t)
	ctx := context.Background()

	res := a.Apply(ctx, models.SyncQueueEntry{Collection: "unknown", Payload: json.RawMessage(`{}`)})
	assert.Equal(t, models.OutcomePermanent, res.Outcome)
	assert.ErrorIs(t, res.Err, ErrMalformedChange)

	res = a.Apply(ctx, models.SyncQueueEntry{Collection: models.CollectionHouseholdSize, Payload: json.RawMessage(`not json`)})
	assert.Equal(t, models.OutcomePermanent, res.Outcome)

	res = a.Apply(ctx, models.SyncQueueEntry{Collection: models.CollectionHouseholdSize})
	assert.Equal(t, models.OutcomePermanent, res.Outcome)
}
