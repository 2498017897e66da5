// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the long-lived background loops of the client (the
// network monitor, the sync job, the quota governor and the local control
// API) under one errgroup.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is cancelled or the
// worker fails. A nil return after cancellation is a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error {
	return f(ctx)
}
