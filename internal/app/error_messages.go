// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the local
// control API handlers.
//
// All Msg* constants are human-readable message strings written into HTTP
// response bodies. Keeping them in one place keeps the wording consistent.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "Invalid JSON was passed"

	// MsgNotCached is returned when a read targets a value this device has
	// never cached.
	MsgNotCached = "value is not cached"

	// MsgUnknownCleanupLevel is returned when a cleanup request names a level
	// other than "standard" or "aggressive".
	MsgUnknownCleanupLevel = "unknown cleanup level"
)
