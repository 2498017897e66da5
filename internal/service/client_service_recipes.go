// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-meal-planner/internal/adapter"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/internal/validators"
	"github.com/MKhiriev/go-meal-planner/models"
)

type recipeService struct {
	entities   store.EntityRepository
	server     adapter.ServerAdapter
	optimistic OptimisticManager
	validator  validators.Validator

	logger *logger.Logger
}

func newRecipeService(entities store.EntityRepository, server adapter.ServerAdapter, optimistic OptimisticManager, validator validators.Validator, logger *logger.Logger) RecipeService {
	return &recipeService{
		entities:   entities,
		server:     server,
		optimistic: optimistic,
		validator:  validator,
		logger:     logger,
	}
}

func (r *recipeService) fetchRecipe(recipeID string) FetchFunc {
	return func(ctx context.Context) (json.RawMessage, error) {
		recipe, err := r.server.GetRecipe(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(recipe)
	}
}

func (r *recipeService) GetRecipe(ctx context.Context, recipeID string) (models.Recipe, error) {
	key := models.RecipeKey(recipeID)

	e, err := r.optimistic.Fetch(ctx, key.Collection, key.ID(), r.fetchRecipe(recipeID))
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "recipeService.GetRecipe").
			Str("recipe_id", recipeID).
			Msg("serving cached recipe")

		cached, found, cacheErr := r.CachedRecipe(ctx, recipeID)
		if cacheErr != nil {
			return models.Recipe{}, cacheErr
		}
		if !found {
			return models.Recipe{}, fmt.Errorf("%w: recipe %s: %w", ErrNotCached, recipeID, err)
		}
		return cached, nil
	}

	var recipe models.Recipe
	if err = e.Decode(&recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("decode recipe %s: %w", recipeID, err)
	}
	return recipe, nil
}

func (r *recipeService) CachedRecipe(ctx context.Context, recipeID string) (models.Recipe, bool, error) {
	return readCached[models.Recipe](ctx, r.entities, models.RecipeKey(recipeID))
}

func (r *recipeService) UpdateRecipeTitle(ctx context.Context, recipeID, title string) (models.Recipe, error) {
	title = strings.TrimSpace(title)
	if err := r.validator.Validate(ctx, models.Recipe{ID: recipeID, Title: title}); err != nil {
		return models.Recipe{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	key := models.RecipeKey(recipeID)

	var desired models.Recipe
	e, err := r.optimistic.Mutate(ctx, Mutation{
		Collection: key.Collection,
		ID:         key.ID(),
		Apply: func(current *models.StoredEntity) (json.RawMessage, error) {
			desired = models.Recipe{ID: recipeID}
			if current != nil {
				if decodeErr := current.Decode(&desired); decodeErr != nil {
					return nil, decodeErr
				}
			}
			desired.Title = title
			return json.Marshal(desired)
		},
		Remote: func(ctx context.Context) (json.RawMessage, error) {
			canonical, updateErr := r.server.UpdateRecipe(ctx, models.Recipe{ID: recipeID, Title: title})
			if updateErr != nil {
				return nil, updateErr
			}
			return json.Marshal(canonical)
		},
		Settle:      r.fetchRecipe(recipeID),
		Invalidates: []string{models.CollectionRecipeSearch},
	})
	if err != nil {
		return models.Recipe{}, err
	}

	var recipe models.Recipe
	if err = e.Decode(&recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("decode recipe %s: %w", recipeID, err)
	}
	return recipe, nil
}
