// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUserID          = errors.New("user id is required")
	ErrInvalidHouseholdSize = errors.New("household size must be at least 1")
	ErrEmptyMealPlanID      = errors.New("meal plan id is required")
	ErrEmptyRecipeID        = errors.New("recipe id is required")
	ErrInvalidServings      = errors.New("servings must be at least 1")
	ErrEmptyListID          = errors.New("shopping list id is required")
	ErrEmptyCategory        = errors.New("category name is required")
	ErrEmptyItemName        = errors.New("item name is required")
	ErrInvalidQuantity      = errors.New("item quantity cannot be negative")
	ErrEmptyTitle           = errors.New("title is required")
)
