// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the local control API server. It is
// run as a worker next to the sync loops.
type Server interface {
	// Run serves requests until ctx is cancelled and then shuts down.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
