// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-meal-planner/internal/adapter"
	"github.com/MKhiriev/go-meal-planner/internal/service"
	"github.com/MKhiriev/go-meal-planner/internal/store"
)

// errorStatuses is checked in order; the first match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest},
	{service.ErrNotCached, http.StatusNotFound},
	{service.ErrOffline, http.StatusServiceUnavailable},
	{service.ErrSyncInProgress, http.StatusConflict},
	{service.ErrStorageFull, http.StatusInsufficientStorage},

	{store.ErrInvalidEntity, http.StatusBadRequest},
	{store.ErrQuotaExceeded, http.StatusInsufficientStorage},
	{store.ErrStoreNotInitialized, http.StatusServiceUnavailable},

	{adapter.ErrValidation, http.StatusUnprocessableEntity},
	{adapter.ErrOwnership, http.StatusForbidden},
	{adapter.ErrNotFound, http.StatusNotFound},
	{adapter.ErrConflict, http.StatusConflict},
	{adapter.ErrRateLimited, http.StatusTooManyRequests},
	{adapter.ErrNetwork, http.StatusBadGateway},
	{adapter.ErrServer, http.StatusBadGateway},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
