// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

type namedWorker struct {
	name   string
	worker Worker
}

type Workers struct {
	workers []namedWorker

	logger *logger.Logger
}

func NewWorkers(logger *logger.Logger) *Workers {
	return &Workers{logger: logger}
}

// Add registers worker under name. Nil workers are skipped so optional
// components can be passed unconditionally.
func (w *Workers) Add(name string, worker Worker) *Workers {
	if worker != nil {
		w.workers = append(w.workers, namedWorker{name: name, worker: worker})
	}
	return w
}

// Run starts every worker and blocks until all of them return. The first
// failure cancels the others and is returned.
func (w *Workers) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	for _, nw := range w.workers {
		g.Go(func() error {
			w.logger.Debug().Str("func", "Workers.Run").Str("worker", nw.name).Msg("worker started")

			if err := nw.worker.Run(gCtx); err != nil {
				w.logger.Err(err).Str("func", "Workers.Run").Str("worker", nw.name).Msg("worker failed")
				return fmt.Errorf("worker %s: %w", nw.name, err)
			}

			w.logger.Debug().Str("func", "Workers.Run").Str("worker", nw.name).Msg("worker stopped")
			return nil
		})
	}

	return g.Wait()
}
