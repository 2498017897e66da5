// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"net/url"
	"strings"
)

// Collections known to the client.
const (
	CollectionHouseholdSize  = "household_size"
	CollectionManualOverride = "manual_override"
	CollectionShoppingList   = "shopping_list"
	CollectionRecipe         = "recipe"
	CollectionRecipeSearch   = "recipe_search"
)

// PendingKey is a structured composite key: a collection plus the ordered
// identifiers that make an entity unique inside it (a user ID, or a meal plan
// ID and a recipe ID).
type PendingKey struct {
	Collection string
	Parts      []string
}

// HouseholdSizeKey returns the key of the household size preference of userID.
func HouseholdSizeKey(userID string) PendingKey {
	return PendingKey{Collection: CollectionHouseholdSize, Parts: []string{userID}}
}

// ManualOverrideKey returns the key of a serving override of recipeID inside mealPlanID.
func ManualOverrideKey(mealPlanID, recipeID string) PendingKey {
	return PendingKey{Collection: CollectionManualOverride, Parts: []string{mealPlanID, recipeID}}
}

// ShoppingListKey returns the key of a shopping list.
func ShoppingListKey(listID string) PendingKey {
	return PendingKey{Collection: CollectionShoppingList, Parts: []string{listID}}
}

// RecipeKey returns the key of a cached recipe.
func RecipeKey(recipeID string) PendingKey {
	return PendingKey{Collection: CollectionRecipe, Parts: []string{recipeID}}
}

// ID encodes Parts into the entity identifier used inside Collection.
// Every part is path-escaped, so ("a/b", "c") and ("a", "b/c") never collide.
// The result is only ever compared, never split back.
func (k PendingKey) ID() string {
	escaped := make([]string, len(k.Parts))
	for i, p := range k.Parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.Join(escaped, "/")
}

// String renders the key for logs.
func (k PendingKey) String() string {
	return k.Collection + ":" + k.ID()
}
