// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-meal-planner/internal/app"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
	"github.com/MKhiriev/go-meal-planner/models"
)

type householdSizeRequest struct {
	HouseholdSize int `json:"household_size"`
}

type manualOverrideRequest struct {
	Servings *int `json:"servings"`
}

func (h *Handler) getHouseholdSize(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	size, found, err := h.services.Preferences.GetCachedHouseholdSize(r.Context(), userID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getHouseholdSize").Msg("error reading household size")
		http.Error(w, "error reading household size", statusFromError(err))
		return
	}
	if !found {
		http.Error(w, app.MsgNotCached, http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, models.HouseholdSize{UserID: userID, HouseholdSize: size}, http.StatusOK)
}

func (h *Handler) putHouseholdSize(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	userID := chi.URLParam(r, "userID")

	var req householdSizeRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.putHouseholdSize").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err := h.services.Preferences.CacheHouseholdSizeChange(r.Context(), userID, req.HouseholdSize); err != nil {
		log.Err(err).Str("func", "*Handler.putHouseholdSize").Msg("error caching household size")
		http.Error(w, "error caching household size", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.HouseholdSize{UserID: userID, HouseholdSize: req.HouseholdSize}, http.StatusAccepted)
}

func (h *Handler) getManualOverride(w http.ResponseWriter, r *http.Request) {
	mealPlanID, recipeID := chi.URLParam(r, "mealPlanID"), chi.URLParam(r, "recipeID")

	servings, found, err := h.services.Preferences.GetCachedManualOverride(r.Context(), mealPlanID, recipeID)
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getManualOverride").Msg("error reading manual override")
		http.Error(w, "error reading manual override", statusFromError(err))
		return
	}
	if !found {
		http.Error(w, app.MsgNotCached, http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, models.ManualOverride{MealPlanID: mealPlanID, RecipeID: recipeID, Servings: servings}, http.StatusOK)
}

func (h *Handler) putManualOverride(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	mealPlanID, recipeID := chi.URLParam(r, "mealPlanID"), chi.URLParam(r, "recipeID")

	var req manualOverrideRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Err(err).Str("func", "*Handler.putManualOverride").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	h.cacheManualOverride(w, r, mealPlanID, recipeID, req.Servings)
}

func (h *Handler) resetManualOverride(w http.ResponseWriter, r *http.Request) {
	h.cacheManualOverride(w, r, chi.URLParam(r, "mealPlanID"), chi.URLParam(r, "recipeID"), nil)
}

func (h *Handler) cacheManualOverride(w http.ResponseWriter, r *http.Request, mealPlanID, recipeID string, servings *int) {
	if err := h.services.Preferences.CacheManualOverride(r.Context(), mealPlanID, recipeID, servings); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.cacheManualOverride").Msg("error caching manual override")
		http.Error(w, "error caching manual override", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.ManualOverride{MealPlanID: mealPlanID, RecipeID: recipeID, Servings: servings}, http.StatusAccepted)
}
