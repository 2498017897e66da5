// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
	"github.com/MKhiriev/go-meal-planner/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises adapterCfg.HTTPAddress and applies the
// configured request timeout and bearer token.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	h := &httpServerAdapter{
		client: utils.NewJSONClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}
	h.SetToken(adapterCfg.AuthToken)

	return h, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)

	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()
	if token != "" {
		req.SetAuthToken(token)
	}

	return req
}

func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.request(ctx).Get("/api/health")
	if err != nil {
		return transportError("health request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) PutHouseholdSize(ctx context.Context, hs models.HouseholdSize) (models.HouseholdSize, error) {
	confirmed := hs

	resp, err := h.request(ctx).
		SetBody(hs).
		SetResult(&confirmed).
		SetPathParam("userID", hs.UserID).
		Put("/api/users/{userID}/household-size")
	if err != nil {
		return models.HouseholdSize{}, transportError("put household size request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HouseholdSize{}, err
	}

	return confirmed, nil
}

func (h *httpServerAdapter) PutManualOverride(ctx context.Context, o models.ManualOverride) (models.ManualOverride, error) {
	confirmed := o

	resp, err := h.request(ctx).
		SetBody(o).
		SetResult(&confirmed).
		SetPathParams(map[string]string{"mealPlanID": o.MealPlanID, "recipeID": o.RecipeID}).
		Put("/api/meal-plans/{mealPlanID}/recipes/{recipeID}/servings")
	if err != nil {
		return models.ManualOverride{}, transportError("put manual override request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ManualOverride{}, err
	}

	return confirmed, nil
}

func (h *httpServerAdapter) DeleteManualOverride(ctx context.Context, mealPlanID, recipeID string) error {
	resp, err := h.request(ctx).
		SetPathParams(map[string]string{"mealPlanID": mealPlanID, "recipeID": recipeID}).
		Delete("/api/meal-plans/{mealPlanID}/recipes/{recipeID}/servings")
	if err != nil {
		return transportError("delete manual override request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CreateShoppingList(ctx context.Context, l models.ShoppingList) (models.ShoppingList, error) {
	confirmed := l

	resp, err := h.request(ctx).
		SetBody(l).
		SetResult(&confirmed).
		SetPathParam("listID", l.ID).
		Post("/api/shopping-lists/{listID}")
	if err != nil {
		return models.ShoppingList{}, transportError("create shopping list request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShoppingList{}, err
	}

	return confirmed, nil
}

func (h *httpServerAdapter) UpdateShoppingList(ctx context.Context, l models.ShoppingList) (models.ShoppingList, error) {
	confirmed := l

	resp, err := h.request(ctx).
		SetBody(l).
		SetResult(&confirmed).
		SetPathParam("listID", l.ID).
		Put("/api/shopping-lists/{listID}")
	if err != nil {
		return models.ShoppingList{}, transportError("update shopping list request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShoppingList{}, err
	}

	return confirmed, nil
}

func (h *httpServerAdapter) DeleteShoppingList(ctx context.Context, listID string) error {
	resp, err := h.request(ctx).
		SetPathParam("listID", listID).
		Delete("/api/shopping-lists/{listID}")
	if err != nil {
		return transportError("delete shopping list request", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GetRecipe(ctx context.Context, recipeID string) (models.Recipe, error) {
	var recipe models.Recipe

	resp, err := h.request(ctx).
		SetResult(&recipe).
		SetPathParam("recipeID", recipeID).
		Get("/api/recipes/{recipeID}")
	if err != nil {
		return models.Recipe{}, transportError("get recipe request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Recipe{}, err
	}

	return recipe, nil
}

func (h *httpServerAdapter) UpdateRecipe(ctx context.Context, r models.Recipe) (models.Recipe, error) {
	confirmed := r

	resp, err := h.request(ctx).
		SetBody(r).
		SetResult(&confirmed).
		SetPathParam("recipeID", r.ID).
		Patch("/api/recipes/{recipeID}")
	if err != nil {
		return models.Recipe{}, transportError("update recipe request", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Recipe{}, err
	}

	return confirmed, nil
}
