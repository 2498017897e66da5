// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the local control API the UI layer talks to.
//
// The server is a worker: it serves until its context is cancelled and then
// shuts down gracefully, so it can run under the same errgroup as the sync
// loops.
package server
