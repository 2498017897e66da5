// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-meal-planner/models"
)

type stateMsg struct {
	state models.SyncState
}

type syncDoneMsg struct {
	report models.FlushReport
	err    error
}

type storageLoadedMsg struct {
	usage  models.StorageUsage
	health models.StorageHealth
}

type cleanupDoneMsg struct {
	report models.CleanupReport
	err    error
}

type cacheClearedMsg struct {
	err error
}

type clearStatusMsg struct{}
