// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/api/version", h.getVersion)

	router.Route("/api/sync", func(r chi.Router) {
		r.Get("/status", h.getSyncStatus)
		r.Post("/force", h.forceSync)
		r.Get("/failures", h.getSyncFailures)
		r.Delete("/failures", h.clearSyncFailures)
	})
	router.Get("/api/pending/count", h.getPendingCount)
	router.Delete("/api/cache", h.clearCache)

	router.Route("/api/storage", func(r chi.Router) {
		r.Get("/usage", h.getStorageUsage)
		r.Get("/health", h.getStorageHealth)
		r.Post("/cleanup", h.cleanupStorage)
	})

	router.Route("/api/preferences", func(r chi.Router) {
		r.Get("/household-size/{userID}", h.getHouseholdSize)
		r.Put("/household-size/{userID}", h.putHouseholdSize)
		r.Get("/overrides/{mealPlanID}/{recipeID}", h.getManualOverride)
		r.Put("/overrides/{mealPlanID}/{recipeID}", h.putManualOverride)
		r.Delete("/overrides/{mealPlanID}/{recipeID}", h.resetManualOverride)
	})

	router.Route("/api/shopping-lists", func(r chi.Router) {
		r.Get("/", h.listShoppingLists)
		r.Post("/", h.createShoppingList)
		r.Get("/{listID}", h.getShoppingList)
		r.Put("/{listID}", h.updateShoppingList)
		r.Delete("/{listID}", h.deleteShoppingList)
	})

	router.Route("/api/recipes", func(r chi.Router) {
		r.Get("/{recipeID}", h.getRecipe)
		r.Patch("/{recipeID}", h.patchRecipe)
	})

	return router
}
