// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-meal-planner/internal/adapter"
	"github.com/MKhiriev/go-meal-planner/internal/client"
	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/handler"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/network"
	"github.com/MKhiriev/go-meal-planner/internal/server"
	"github.com/MKhiriev/go-meal-planner/internal/service"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/internal/tui"
	"github.com/MKhiriev/go-meal-planner/internal/workers"
	"github.com/MKhiriev/go-meal-planner/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.NewLogger("meal-planner-client")
	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if !cfg.App.Headless {
		// stdout belongs to the status screen
		log = logger.NewClientLogger("meal-planner-client", logger.FileOptions{Path: cfg.App.LogFile})
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	monitor := network.NewMonitor(network.ProberFunc(serverAdapter.Health), cfg.Network.ProbeInterval, false, log)
	services := service.NewClientServices(storages.Store, serverAdapter, monitor, cfg, log)

	var controlAPI workers.Worker
	if cfg.Server.HTTPAddress != "" {
		handlers, handlersErr := handler.NewHandlers(services, buildInfo, cfg.Server, log)
		if handlersErr != nil {
			log.Fatal().Err(handlersErr).Msg("error creating handlers")
		}
		srv, serverErr := server.NewServer(handlers.HTTP.Init(), cfg.Server, log)
		if serverErr != nil {
			log.Fatal().Err(serverErr).Msg("error creating control api server")
		}
		controlAPI = srv
	}

	var ui client.UI
	if !cfg.App.Headless {
		ui, err = tui.New(services, buildInfo, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating ui")
		}
	}

	app, err := client.NewApp(services, monitor, controlAPI, ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Error().Err(err).Msg("client run error")
		_ = storages.Close()
		os.Exit(1)
	}
}

func printBuildInfo(info models.BuildInfo) {
	fmt.Printf("Build version: %s\n", info.Version)
	fmt.Printf("Build date: %s\n", info.Date)
	fmt.Printf("Build commit: %s\n", info.Commit)
}
