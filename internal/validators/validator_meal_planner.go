// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-meal-planner/models"
)

// Field name constants used to restrict Validate to a subset of fields.
const (
	FieldUserID        = "user_id"
	FieldHouseholdSize = "household_size"
	FieldMealPlanID    = "meal_plan_id"
	FieldRecipeID      = "recipe_id"
	FieldServings      = "servings"
	FieldListID        = "id"
	FieldCategories    = "categories"
	FieldTitle         = "title"
)

type MealPlannerValidator struct {
}

func NewMealPlannerValidator() Validator {
	return &MealPlannerValidator{}
}

func (v *MealPlannerValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.HouseholdSize:
		return v.validateHouseholdSize(ctx, value, fields...)
	case *models.HouseholdSize:
		return v.validateHouseholdSize(ctx, *value, fields...)

	case models.ManualOverride:
		return v.validateManualOverride(ctx, value, fields...)
	case *models.ManualOverride:
		return v.validateManualOverride(ctx, *value, fields...)

	case models.ShoppingList:
		return v.validateShoppingList(ctx, value, fields...)
	case *models.ShoppingList:
		return v.validateShoppingList(ctx, *value, fields...)

	case models.Recipe:
		return v.validateRecipe(ctx, value, fields...)
	case *models.Recipe:
		return v.validateRecipe(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *MealPlannerValidator) validateHouseholdSize(ctx context.Context, hs models.HouseholdSize, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldHouseholdSize}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if strings.TrimSpace(hs.UserID) == "" {
				return ErrEmptyUserID
			}
		case FieldHouseholdSize:
			if hs.HouseholdSize < 1 {
				return ErrInvalidHouseholdSize
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// A nil Servings is a reset and is always valid.
func (v *MealPlannerValidator) validateManualOverride(ctx context.Context, o models.ManualOverride, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMealPlanID, FieldRecipeID, FieldServings}
	}

	for _, f := range fields {
		switch f {
		case FieldMealPlanID:
			if strings.TrimSpace(o.MealPlanID) == "" {
				return ErrEmptyMealPlanID
			}
		case FieldRecipeID:
			if strings.TrimSpace(o.RecipeID) == "" {
				return ErrEmptyRecipeID
			}
		case FieldServings:
			if o.Servings != nil && *o.Servings < 1 {
				return ErrInvalidServings
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MealPlannerValidator) validateShoppingList(ctx context.Context, l models.ShoppingList, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldListID, FieldCategories}
	}

	for _, f := range fields {
		switch f {
		case FieldListID:
			if strings.TrimSpace(l.ID) == "" {
				return ErrEmptyListID
			}
		case FieldCategories:
			for category, items := range l.Categories {
				if strings.TrimSpace(category) == "" {
					return ErrEmptyCategory
				}
				for i, item := range items {
					if strings.TrimSpace(item.Name) == "" {
						return fmt.Errorf("%w: %s item %d", ErrEmptyItemName, category, i)
					}
					if item.Quantity < 0 {
						return fmt.Errorf("%w: %s", ErrInvalidQuantity, item.Name)
					}
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *MealPlannerValidator) validateRecipe(ctx context.Context, r models.Recipe, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRecipeID, FieldTitle}
	}

	for _, f := range fields {
		switch f {
		case FieldRecipeID:
			if strings.TrimSpace(r.ID) == "" {
				return ErrEmptyRecipeID
			}
		case FieldTitle:
			if strings.TrimSpace(r.Title) == "" {
				return ErrEmptyTitle
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
