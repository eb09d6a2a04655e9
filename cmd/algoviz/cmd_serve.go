// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/AleutianAI/AlgoViz/cmd/algoviz/config"
	"github.com/AleutianAI/AlgoViz/services/visualizer"
	"github.com/AleutianAI/AlgoViz/services/visualizer/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// janitorInterval is how often expired undo sessions are swept.
const janitorInterval = time.Minute

const defaultShutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cmd.Flags().Changed("debug") {
		cfg.Server.Debug = serveDebug
	}
	logger := appLogger.With("component", "serve")

	ctx := cmd.Context()
	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	metrics, err := telemetry.NewMetrics(otel.Meter("algoviz"))
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	svc := newService().WithMetrics(metrics)
	if reg := telemetry.Registry(); reg != nil {
		if err := telemetry.RegisterSessionGauge(reg, svc.SessionCount); err != nil {
			return fmt.Errorf("register session gauge: %w", err)
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	applyRateLimit(limiter, cfg.Server)

	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := visualizer.NewRouter(visualizer.NewHandlers(svc), visualizer.RouterConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		Metrics:        metrics,
		MetricsHandler: telemetry.MetricsHandler(),
		Limiter:        limiter,
	})

	g, gctx := errgroup.WithContext(ctx)

	// Request contexts derive from gctx so websocket playback, which
	// Shutdown does not track, stops with the server.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return gctx },
	}

	g.Go(func() error {
		logger.Info("Server listening", "addr", srv.Addr, "ui", fmt.Sprintf("http://localhost:%d/ui/", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		timeout := cfg.Server.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		if err := svc.RunJanitor(gctx, janitorInterval); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if watcher := newConfigWatcher(limiter, logger.Slog()); watcher != nil {
		g.Go(func() error {
			if err := watcher.Run(gctx); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// applyRateLimit sets the limiter from server config. A zero rate means
// unlimited.
func applyRateLimit(limiter *rate.Limiter, server config.ServerConfig) {
	if server.RequestsPerSecond <= 0 {
		limiter.SetLimit(rate.Inf)
		return
	}
	limiter.SetLimit(rate.Limit(server.RequestsPerSecond))
	limiter.SetBurst(server.Burst)
}

// newConfigWatcher returns a watcher that applies rate limit changes from
// the config file, or nil when the file cannot be watched.
func newConfigWatcher(limiter *rate.Limiter, logger *slog.Logger) *config.Watcher {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			logger.Warn("Config reload disabled", "error", err)
			return nil
		}
	}

	watcher, err := config.NewWatcher(path, func(cfg *config.Config) {
		applyRateLimit(limiter, cfg.Server)
		logger.Info("Rate limit updated",
			"requests_per_second", cfg.Server.RequestsPerSecond,
			"burst", cfg.Server.Burst,
		)
	}, logger)
	if err != nil {
		logger.Warn("Config reload disabled", "error", err)
		return nil
	}
	return watcher
}
