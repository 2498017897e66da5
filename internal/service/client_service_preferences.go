// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/models"
)

type preferenceService struct {
	writer *deferredWriter

	logger *logger.Logger
}

func newPreferenceService(writer *deferredWriter, logger *logger.Logger) PreferenceService {
	return &preferenceService{writer: writer, logger: logger}
}

func (p *preferenceService) CacheHouseholdSizeChange(ctx context.Context, userID string, size int) error {
	hs := models.HouseholdSize{UserID: userID, HouseholdSize: size}
	if err := p.writer.validate(ctx, hs); err != nil {
		return err
	}

	return p.writer.write(ctx, models.HouseholdSizeKey(userID), models.ChangeUpdate, hs)
}

func (p *preferenceService) GetCachedHouseholdSize(ctx context.Context, userID string) (int, bool, error) {
	hs, found, err := readCached[models.HouseholdSize](ctx, p.writer.store, models.HouseholdSizeKey(userID))
	if err != nil || !found {
		return 0, false, err
	}
	return hs.HouseholdSize, true, nil
}

func (p *preferenceService) CacheManualOverride(ctx context.Context, mealPlanID, recipeID string, servings *int) error {
	o := models.ManualOverride{MealPlanID: mealPlanID, RecipeID: recipeID, Servings: servings}
	if err := p.writer.validate(ctx, o); err != nil {
		return err
	}

	changeType := models.ChangeUpdate
	if servings == nil {
		changeType = models.ChangeDelete
	}

	return p.writer.write(ctx, models.ManualOverrideKey(mealPlanID, recipeID), changeType, o)
}

// GetCachedManualOverride returns found=true with nil servings when the
// override was reset locally.
func (p *preferenceService) GetCachedManualOverride(ctx context.Context, mealPlanID, recipeID string) (*int, bool, error) {
	o, found, err := readCached[models.ManualOverride](ctx, p.writer.store, models.ManualOverrideKey(mealPlanID, recipeID))
	if err != nil || !found {
		return nil, false, err
	}
	return o.Servings, true, nil
}
