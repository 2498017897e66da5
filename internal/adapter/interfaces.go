// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// meal-planning REST API.
//
// [ServerAdapter] is the typed API surface. [QueueApplier] sits on top of it
// and turns a queued change into a tagged [models.ApplyResult], so the sync
// coordinator branches on an outcome instead of inspecting errors.
//
// HTTP status codes are mapped to the sentinel errors in errors.go by
// mapHTTPError; [Classify] then decides whether a failure is recoverable.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-meal-planner/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the typed client of the remote meal-planning API.
// Implementations map transport failures to the sentinel errors of this
// package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to subsequent requests.
	SetToken(token string)

	// Health probes the API. A nil error means the server is reachable.
	Health(ctx context.Context) error

	// PutHouseholdSize stores the household size of a user and returns the
	// server-confirmed value.
	PutHouseholdSize(ctx context.Context, hs models.HouseholdSize) (models.HouseholdSize, error)

	// PutManualOverride sets the serving count of a recipe in a meal plan.
	PutManualOverride(ctx context.Context, o models.ManualOverride) (models.ManualOverride, error)

	// DeleteManualOverride resets a serving override to the recipe default.
	DeleteManualOverride(ctx context.Context, mealPlanID, recipeID string) error

	CreateShoppingList(ctx context.Context, l models.ShoppingList) (models.ShoppingList, error)
	UpdateShoppingList(ctx context.Context, l models.ShoppingList) (models.ShoppingList, error)
	DeleteShoppingList(ctx context.Context, listID string) error

	GetRecipe(ctx context.Context, recipeID string) (models.Recipe, error)

	// UpdateRecipe sends a partial update and returns the canonical recipe,
	// which may carry server-derived fields.
	UpdateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error)
}
