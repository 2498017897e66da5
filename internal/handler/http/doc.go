// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the local control API of the meal planner client.
//
// The UI layer uses it to read and write cached preferences and shopping
// lists, edit recipes, watch the sync state, force a sync attempt, clear the
// cache and inspect storage health. Every request gets a trace ID and an
// access log entry before it reaches the service layer.
package http
