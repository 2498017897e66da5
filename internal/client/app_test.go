// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
	"github.com/MKhiriev/go-meal-planner/internal/mock"
	"github.com/MKhiriev/go-meal-planner/internal/network"
	"github.com/MKhiriev/go-meal-planner/internal/service"
	"github.com/MKhiriev/go-meal-planner/internal/store"
	"github.com/MKhiriev/go-meal-planner/internal/tui"
	"github.com/MKhiriev/go-meal-planner/internal/workers"
)

func newTestServices(t *testing.T, monitor *network.Monitor) *service.ClientServices {
	t.Helper()

	storages, err := store.NewClientStorages(context.Background(), config.ClientStorage{DSN: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	server := mock.NewMockServerAdapter(gomock.NewController(t))
	return service.NewClientServices(storages.Store, server, monitor, &config.ClientConfig{}, logger.Nop())
}

type funcUI func(ctx context.Context) error

func (f funcUI) Run(ctx context.Context) error { return f(ctx) }

func TestNewApp_Validation(t *testing.T) {
	monitor := network.NewMonitor(nil, 0, false, logger.Nop())

	_, err := NewApp(nil, monitor, nil, nil, logger.Nop())
	require.ErrorIs(t, err, errNoServices)

	_, err = NewApp(newTestServices(t, monitor), nil, nil, nil, logger.Nop())
	require.ErrorIs(t, err, errNoMonitor)
}

func TestApp_HeadlessStopsOnCancel(t *testing.T) {
	monitor := network.NewMonitor(nil, 0, false, logger.Nop())
	app, err := NewApp(newTestServices(t, monitor), monitor, nil, nil, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestApp_UserQuitStopsWorkers(t *testing.T) {
	monitor := network.NewMonitor(nil, 0, false, logger.Nop())
	ui := funcUI(func(ctx context.Context) error {
		return tui.ErrUserQuit
	})

	app, err := NewApp(newTestServices(t, monitor), monitor, nil, ui, logger.Nop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("app did not stop after user quit")
	}
}

func TestApp_WorkerFailure(t *testing.T) {
	monitor := network.NewMonitor(nil, 0, false, logger.Nop())
	boom := errors.New("listen failed")
	server := workers.WorkerFunc(func(ctx context.Context) error { return boom })

	app, err := NewApp(newTestServices(t, monitor), monitor, server, nil, logger.Nop())
	require.NoError(t, err)

	err = app.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "control-api")
}
