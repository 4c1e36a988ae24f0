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
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/driftwatch/pkg/logging"
	"github.com/AleutianAI/driftwatch/services/driftwatch"
	"github.com/AleutianAI/driftwatch/services/driftwatch/storage"
	"github.com/AleutianAI/driftwatch/services/driftwatch/store"
	"github.com/AleutianAI/driftwatch/services/driftwatch/telemetry"
)

// newServeCmd builds the long-running HTTP service command.
func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the drift detection HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Path to the service config file")
	return cmd
}

func runServe(ctx context.Context, cfg *Config) error {
	logger := logging.New(logging.Config{
		Level:   parseLogLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.Dir,
		Service: "driftwatch",
		JSON:    cfg.Logging.JSON,
	})
	defer logger.Close()

	if cfg.Storage.Bucket == "" {
		return errors.New("storage.bucket is required for serve mode")
	}

	gcsCfg := storage.DefaultGCSConfig(cfg.Storage.Bucket)
	gcsCfg.CredentialsFile = cfg.Storage.CredentialsFile
	if cfg.Storage.Concurrency > 0 {
		gcsCfg.Concurrency = cfg.Storage.Concurrency
	}
	if cfg.Storage.ReadsPerSecond > 0 {
		gcsCfg.ReadsPerSecond = cfg.Storage.ReadsPerSecond
	}
	fetcher, err := storage.NewGCSFetcher(ctx, gcsCfg)
	if err != nil {
		return fmt.Errorf("connect documentation store: %w", err)
	}
	defer fetcher.Close()

	storeCfg := store.DefaultConfig(cfg.Store.Path)
	storeCfg.Logger = logger.Slog()
	reports, err := store.Open(storeCfg)
	if err != nil {
		return fmt.Errorf("open report store: %w", err)
	}
	defer reports.Close()

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewMetrics(registry)

	svc := driftwatch.NewService(fetcher, reports, driftwatch.ServiceConfig{
		AnalyzeTimeout: 60 * time.Second,
		Logger:         logger,
		Metrics:        metrics,
	})
	handlers := driftwatch.NewHandlers(svc)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/v1")
	driftwatch.RegisterRoutes(v1, handlers)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("drift service listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down", "reason", "context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// parseLogLevel maps a config string to a logging level, defaulting to
// Info for unrecognized values.
func parseLogLevel(level string) logging.Level {
	switch level {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}
