// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package network tracks whether the remote API is reachable and tells
// subscribers about online/offline transitions.
//
// The monitor is a leaf dependency: the sync coordinator consults
// [Monitor.IsOnline] before flushing, and the sync job subscribes to
// transitions to flush right after a reconnect.
package network
