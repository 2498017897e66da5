// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/service"
	"github.com/MKhiriev/go-meal-planner/internal/utils"
)

type pendingCountResponse struct {
	PendingChanges int `json:"pending_changes"`
}

func (h *Handler) getSyncStatus(w http.ResponseWriter, r *http.Request) {
	state, err := h.services.SyncControl.Status(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getSyncStatus").Msg("error reading sync state")
		http.Error(w, "error reading sync state", statusFromError(err))
		return
	}

	utils.WriteJSON(w, state, http.StatusOK)
}

// forceSync answers 503 while offline and 409 while another flush runs.
func (h *Handler) forceSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	report, err := h.services.SyncControl.ForceSyncAttempt(r.Context())
	switch {
	case errors.Is(err, service.ErrOffline), errors.Is(err, service.ErrSyncInProgress):
		log.Info().Err(err).Str("func", "*Handler.forceSync").Msg("sync not started")
		http.Error(w, err.Error(), statusFromError(err))
		return
	case err != nil:
		log.Err(err).Str("func", "*Handler.forceSync").Msg("error running sync")
		http.Error(w, "error running sync", statusFromError(err))
		return
	}

	utils.WriteJSON(w, report, http.StatusOK)
}

func (h *Handler) getSyncFailures(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.Coordinator.Failures(), http.StatusOK)
}

func (h *Handler) clearSyncFailures(w http.ResponseWriter, r *http.Request) {
	h.services.Coordinator.ClearFailures()
	h.services.Coordinator.Publish(r.Context())
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getPendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.services.SyncControl.GetPendingChangesCount(r.Context())
	if err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getPendingCount").Msg("error counting pending changes")
		http.Error(w, "error counting pending changes", statusFromError(err))
		return
	}

	utils.WriteJSON(w, pendingCountResponse{PendingChanges: count}, http.StatusOK)
}

func (h *Handler) clearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.services.SyncControl.ClearAllCachedData(r.Context()); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.clearCache").Msg("error clearing cache")
		http.Error(w, "error clearing cache", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.buildInfo, http.StatusOK)
}
