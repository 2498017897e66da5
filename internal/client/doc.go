// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the meal planner client runtime.
//
// It runs the network monitor, the background sync job, the quota governor,
// the optional local control API and the optional terminal UI as one worker
// group, so the first failure or a user quit stops the whole process.
package client
