// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
	"github.com/MKhiriev/go-meal-planner/internal/validators"
	"github.com/MKhiriev/go-meal-planner/models"
)

type shoppingListService struct {
	writer *deferredWriter
	ids    utils.IDGenerator

	logger *logger.Logger
}

func newShoppingListService(writer *deferredWriter, ids utils.IDGenerator, logger *logger.Logger) ShoppingListService {
	return &shoppingListService{writer: writer, ids: ids, logger: logger}
}

// SaveShoppingList creates a list when it has no ID. A list with an ID is
// an update of the server copy even when it is no longer cached locally.
func (s *shoppingListService) SaveShoppingList(ctx context.Context, list models.ShoppingList) (models.ShoppingList, error) {
	changeType := models.ChangeUpdate
	if list.ID == "" {
		list.ID = s.ids.Generate()
		changeType = models.ChangeCreate
	}
	if list.Categories == nil {
		list.Categories = map[string][]models.ShoppingItem{}
	}
	if err := s.writer.validate(ctx, list); err != nil {
		return models.ShoppingList{}, err
	}

	if err := s.writer.write(ctx, models.ShoppingListKey(list.ID), changeType, list); err != nil {
		return models.ShoppingList{}, err
	}
	return list, nil
}

func (s *shoppingListService) GetShoppingList(ctx context.Context, listID string) (models.ShoppingList, bool, error) {
	return readCached[models.ShoppingList](ctx, s.writer.store, models.ShoppingListKey(listID))
}

func (s *shoppingListService) ListShoppingLists(ctx context.Context) ([]models.ShoppingList, error) {
	entities, err := s.writer.store.GetAll(ctx, models.CollectionShoppingList)
	if err != nil {
		return nil, fmt.Errorf("list shopping lists: %w", err)
	}

	lists := make([]models.ShoppingList, 0, len(entities))
	for _, e := range entities {
		var l models.ShoppingList
		if err = e.Decode(&l); err != nil {
			s.logger.Err(err).
				Str("func", "shoppingListService.ListShoppingLists").
				Str("id", e.ID).
				Msg("skipping undecodable shopping list")
			continue
		}
		lists = append(lists, l)
	}
	return lists, nil
}

func (s *shoppingListService) DeleteShoppingList(ctx context.Context, listID string) error {
	if err := s.writer.validate(ctx, models.ShoppingList{ID: listID}, validators.FieldListID); err != nil {
		return err
	}
	return s.writer.remove(ctx, models.ShoppingListKey(listID), models.ShoppingList{ID: listID})
}
