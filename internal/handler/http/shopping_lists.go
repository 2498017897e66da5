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

func (h *Handler) listShoppingLists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.services.ShoppingLists.ListShoppingLists(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.listShoppingLists").Msg("error listing shopping lists")
		http.Error(w, "error listing shopping lists", statusFromError(err))
		return
	}

	utils.WriteJSON(w, lists, http.StatusOK)
}

func (h *Handler) getShoppingList(w http.ResponseWriter, r *http.Request) {
	list, found, err := h.services.ShoppingLists.GetShoppingList(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getShoppingList").Msg("error reading shopping list")
		http.Error(w, "error reading shopping list", statusFromError(err))
		return
	}
	if !found {
		http.Error(w, app.MsgNotCached, http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, list, http.StatusOK)
}

func (h *Handler) createShoppingList(w http.ResponseWriter, r *http.Request) {
	h.saveShoppingList(w, r, "", http.StatusCreated)
}

func (h *Handler) updateShoppingList(w http.ResponseWriter, r *http.Request) {
	h.saveShoppingList(w, r, chi.URLParam(r, "listID"), http.StatusAccepted)
}

func (h *Handler) saveShoppingList(w http.ResponseWriter, r *http.Request, listID string, status int) {
	log := logger.FromRequest(r)

	var list models.ShoppingList
	if err := utils.DecodeJSON(r.Body, &list); err != nil {
		log.Err(err).Str("func", "*Handler.saveShoppingList").Msg(app.MsgInvalidJSON)
		http.Error(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}
	list.ID = listID

	saved, err := h.services.ShoppingLists.SaveShoppingList(r.Context(), list)
	if err != nil {
		log.Err(err).Str("func", "*Handler.saveShoppingList").Msg("error saving shopping list")
		http.Error(w, "error saving shopping list", statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, status)
}

func (h *Handler) deleteShoppingList(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ShoppingLists.DeleteShoppingList(r.Context(), chi.URLParam(r, "listID")); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.deleteShoppingList").Msg("error deleting shopping list")
		http.Error(w, "error deleting shopping list", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
