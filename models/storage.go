// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "math"

// StorageUsage is the local store footprint relative to the platform quota.
type StorageUsage struct {
	Used       int64 `json:"used"`
	Available  int64 `json:"available"`
	Percentage int   `json:"percentage"`
}

// NewStorageUsage computes the rounded percentage of used against available,
// clamped to [0,100]. A zero or negative available yields 0.
func NewStorageUsage(used, available int64) StorageUsage {
	usage := StorageUsage{Used: used, Available: available}
	if available <= 0 {
		return usage
	}

	pct := math.Round(float64(used) / float64(available) * 100)
	switch {
	case pct < 0:
		pct = 0
	case pct > 100:
		pct = 100
	}
	usage.Percentage = int(pct)

	return usage
}

// CleanupLevel is the eviction policy recommended or run by the quota governor.
type CleanupLevel int

const (
	CleanupNone CleanupLevel = iota
	CleanupStandard
	CleanupAggressive
)

func (l CleanupLevel) String() string {
	switch l {
	case CleanupStandard:
		return "standard"
	case CleanupAggressive:
		return "aggressive"
	}
	return "none"
}

// CleanupReport lists what one cleanup pass removed or compressed.
type CleanupReport struct {
	Level      CleanupLevel `json:"level"`
	Evicted    int64        `json:"evicted"`
	Compressed int          `json:"compressed"`
}

// StorageHealth is the quota governor's verdict. Issues and Recommendations
// are index-aligned.
type StorageHealth struct {
	IsHealthy       bool     `json:"is_healthy"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}
