// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-meal-planner/internal/app"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
)

type patchRecipeRequest struct {
	Title string `json:"title"`
}

func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.services.Recipes.GetRecipe(r.Context(), chi.URLParam(r, "recipeID"))
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getRecipe").Msg("error reading recipe")
		http.Error(w, "error reading recipe", statusFromError(err))
		return
	}

	utils.WriteJSON(w, recipe, http.StatusOK)
}

func (h *Handler) patchRecipe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req patchRecipeRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.patchRecipe").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	recipe, err := h.services.Recipes.UpdateRecipeTitle(r.Context(), chi.URLParam(r, "recipeID"), req.Title)
	if err != nil {
		log.Err(err).Str("func", "*Handler.patchRecipe").Msg("error updating recipe")
		http.Error(w, "error updating recipe", statusFromError(err))
		return
	}

	utils.WriteJSON(w, recipe, http.StatusOK)
}
