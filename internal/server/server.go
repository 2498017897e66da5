// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/go-meal-planner/internal/config"
	"github.com/MKhiriev/go-meal-planner/internal/logger"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the local control API server. It fails when no listen
// address is configured.
func NewServer(handler http.Handler, cfg config.ClientServer, logger *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errNoControlAddress
	}

	logger.Info().Str("address", cfg.HTTPAddress).Msg("creating local control server...")

	return &server{
		httpServer: newHTTPServer(handler, cfg.HTTPAddress),
		logger:     logger,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.RunServer()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.logger.Err(err).Str("func", "server.Run").Msg("local control server stopped")
		return fmt.Errorf("local control server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("local control server shut down gracefully")

	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Err(err).Str("func", "server.Shutdown").Msg("error shutting down local control server")
		return fmt.Errorf("shutdown local control server: %w", err)
	}
	return nil
}
