// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-meal-planner/internal/app"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
	"github.com/MKhiriev/go-meal-planner/models"
)

func (h *Handler) getStorageUsage(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Quota.GetUsage(r.Context()), http.StatusOK)
}

func (h *Handler) getStorageHealth(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Quota.GetHealth(r.Context()), http.StatusOK)
}

// cleanupStorage runs the cleanup named by the "level" query parameter, or
// the recommended one when it is absent.
func (h *Handler) cleanupStorage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var (
		report models.CleanupReport
		err    error
	)
	switch level := r.URL.Query().Get("level"); level {
	case "":
		report, err = h.services.Quota.Reconcile(ctx)
	case models.CleanupStandard.String():
		report, err = h.services.Quota.Cleanup(ctx, models.CleanupStandard)
	case models.CleanupAggressive.String():
		report, err = h.services.Quota.Cleanup(ctx, models.CleanupAggressive)
	default:
		log.Error().Str("func", "*Handler.cleanupStorage").Str("level", level).Msg("unknown cleanup level")
		http.Error(w, app.MsgUnknownCleanupLevel, http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.cleanupStorage").Msg("error cleaning up storage")
		http.Error(w, "error cleaning up storage", statusFromError(err))
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}
