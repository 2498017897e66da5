// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/service"
	"github.com/MKhiriev/go-meal-planner/internal/tui"
	"github.com/MKhiriev/go-meal-planner/internal/workers"
)

type App struct {
	services *service.ClientServices
	monitor  workers.Worker
	server   workers.Worker
	ui       UI

	logger *logger.Logger
}

// NewApp assembles the client runtime. server and ui are optional: a nil
// server disables the control API and a nil ui runs the client headless.
func NewApp(services *service.ClientServices, monitor workers.Worker, server workers.Worker, ui UI, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errNoServices
	}
	if monitor == nil {
		return nil, errNoMonitor
	}

	return &App{
		services: services,
		monitor:  monitor,
		server:   server,
		ui:       ui,
		logger:   logger,
	}, nil
}

// Run starts the background workers and blocks until ctx is cancelled, a
// worker fails or the user quits the terminal UI.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	w := workers.NewWorkers(a.logger).
		Add("network-monitor", a.monitor).
		Add("sync-job", a.services.SyncJob).
		Add("quota-governor", a.services.Quota)
	if a.server != nil {
		w.Add("control-api", a.server)
	}
	if a.ui != nil {
		w.Add("tui", workers.WorkerFunc(a.ui.Run))
	}

	a.logger.Info().Msg("client started")

	err := w.Run(ctx)
	if errors.Is(err, tui.ErrUserQuit) {
		a.logger.Info().Msg("client stopped by user")
		return nil
	}
	if err != nil {
		return fmt.Errorf("client run: %w", err)
	}

	a.logger.Info().Msg("client stopped")
	return nil
}
