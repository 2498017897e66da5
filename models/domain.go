// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// HouseholdSize is the cached "how many people do we cook for" preference.
type HouseholdSize struct {
	UserID        string `json:"user_id"`
	HouseholdSize int    `json:"household_size"`
}

// ManualOverride is a serving count set for one recipe in one meal plan.
// A nil Servings means the override was reset to the recipe default.
type ManualOverride struct {
	MealPlanID string `json:"meal_plan_id"`
	RecipeID   string `json:"recipe_id"`
	Servings   *int   `json:"servings"`
}

// ShoppingItem is one line of a shopping list.
type ShoppingItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
	Checked  bool    `json:"checked"`
}

// ShoppingList groups items by store category.
type ShoppingList struct {
	ID         string                    `json:"id"`
	MealPlanID string                    `json:"meal_plan_id,omitempty"`
	Categories map[string][]ShoppingItem `json:"categories"`
}

// Recipe is the subset of a recipe the client edits optimistically. Fields
// other than Title may be derived on the server.
type Recipe struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Servings  int    `json:"servings"`
	Slug      string `json:"slug,omitempty"`
	UpdatedBy string `json:"updated_by,omitempty"`
}
