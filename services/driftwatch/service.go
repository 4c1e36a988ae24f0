// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package driftwatch provides the documentation drift HTTP service.
//
// The service exposes endpoints for:
//   - Triggering a drift analysis over uploaded input artifacts
//   - Retrieving a stored drift report by id
//   - Retrieving the latest report for a repository
package driftwatch

import (
	"context"
	"time"

	"github.com/AleutianAI/driftwatch/pkg/logging"
	"github.com/AleutianAI/driftwatch/services/driftwatch/pipeline"
	"github.com/AleutianAI/driftwatch/services/driftwatch/report"
	"github.com/AleutianAI/driftwatch/services/driftwatch/storage"
	"github.com/AleutianAI/driftwatch/services/driftwatch/store"
	"github.com/AleutianAI/driftwatch/services/driftwatch/telemetry"
)

// ServiceConfig configures the drift service.
type ServiceConfig struct {
	// AnalyzeTimeout bounds one analysis run end to end.
	// Default: 60s
	AnalyzeTimeout time.Duration

	// Logger is the service logger. Default: logging.Default()
	Logger *logging.Logger

	// Metrics optionally records pipeline outcomes. May be nil.
	Metrics *telemetry.Metrics
}

// DefaultServiceConfig returns sensible defaults.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		AnalyzeTimeout: 60 * time.Second,
	}
}

// Service runs drift analyses and serves stored reports.
//
// Thread Safety: Service is safe for concurrent use.
type Service struct {
	orchestrator *pipeline.Orchestrator
	reports      *store.Store
	logger       *logging.Logger
	cfg          ServiceConfig
}

// NewService wires together the pipeline, documentation fetcher, and
// report store.
//
// Inputs:
//
//	fetcher - Documentation store adapter. Must not be nil.
//	reports - Report store. May be nil for stateless (CLI) use; Analyze
//	          then skips persistence and Report/LatestReport return
//	          store.ErrReportNotFound.
//	cfg - Service configuration.
//
// Outputs:
//
//	*Service - The wired service.
func NewService(fetcher storage.Fetcher, reports *store.Store, cfg ServiceConfig) *Service {
	if cfg.AnalyzeTimeout <= 0 {
		cfg.AnalyzeTimeout = 60 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		orchestrator: pipeline.New(fetcher, pipeline.Config{
			Logger:  logger,
			Metrics: cfg.Metrics,
		}),
		reports: reports,
		logger:  logger,
		cfg:     cfg,
	}
}

// Analyze runs one drift analysis and persists the resulting report.
//
// Description:
//
//	Bounds the run with AnalyzeTimeout, then stores the generated report
//	so it can be served by id. Persistence failure does not invalidate
//	the analysis: the result is still returned and the failure is logged.
//
// Inputs:
//
//	ctx - Caller context.
//	impactJSON - Raw impact_report.json bytes.
//	snapshotJSON - Raw doc_snapshot.json bytes.
//
// Outputs:
//
//	*pipeline.RunResult - Report plus warnings. Nil only on input error.
//	error - *input.MalformedInputError when the inputs are broken.
func (s *Service) Analyze(ctx context.Context, impactJSON, snapshotJSON []byte) (*pipeline.RunResult, error) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.AnalyzeTimeout)
	defer cancel()

	result, err := s.orchestrator.Run(runCtx, impactJSON, snapshotJSON)
	if err != nil {
		return nil, err
	}

	if s.reports != nil {
		if err := s.reports.Put(result.Report); err != nil {
			s.logger.Error("report persistence failed",
				"report_id", result.Report.ReportID, "error", err.Error())
		}
	}
	return result, nil
}

// Report returns a stored report by id.
func (s *Service) Report(reportID string) (*report.DriftReport, error) {
	if s.reports == nil {
		return nil, store.ErrReportNotFound
	}
	return s.reports.Get(reportID)
}

// LatestReport returns the most recent stored report for a repository.
func (s *Service) LatestReport(repoName string) (*report.DriftReport, error) {
	if s.reports == nil {
		return nil, store.ErrReportNotFound
	}
	return s.reports.Latest(repoName)
}
