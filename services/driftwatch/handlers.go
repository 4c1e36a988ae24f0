// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package driftwatch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/driftwatch/services/driftwatch/input"
	"github.com/AleutianAI/driftwatch/services/driftwatch/pipeline"
	"github.com/AleutianAI/driftwatch/services/driftwatch/store"
)

// AnalyzeRequest is the body of POST /v1/drift/analyze: the two raw
// upstream artifacts, inlined.
type AnalyzeRequest struct {
	ImpactReport json.RawMessage `json:"impact_report" binding:"required"`
	DocSnapshot  json.RawMessage `json:"doc_snapshot" binding:"required"`
}

// AnalyzeResponse carries the generated report plus the run's recovered
// warnings, which are observable here but not part of the report schema.
type AnalyzeResponse struct {
	Report       any                `json:"report"`
	Warnings     []pipeline.Warning `json:"warnings,omitempty"`
	SkippedFiles []string           `json:"skipped_files,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Handlers contains the HTTP handlers for the drift service.
//
// Thread Safety: Handlers is safe for concurrent use.
type Handlers struct {
	svc *Service
}

// NewHandlers creates handlers wrapping the given service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// HandleAnalyze handles POST /v1/drift/analyze.
//
// Description:
//
//	Runs a drift analysis over the inlined impact report and doc
//	snapshot, persists the report, and returns it with the run warnings.
//
// Response:
//
//	200 OK: AnalyzeResponse
//	400 Bad Request: body not JSON, or input artifacts malformed
//	500 Internal Server Error: unexpected processing error
func (h *Handlers) HandleAnalyze(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.svc.logger.With("request_id", requestID, "handler", "HandleAnalyze")

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Request body must carry impact_report and doc_snapshot",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), req.ImpactReport, req.DocSnapshot)
	if err != nil {
		if errors.Is(err, input.ErrMalformedInput) {
			logger.Warn("malformed input artifact", "error", err.Error())
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: err.Error(),
				Code:  "MALFORMED_INPUT",
			})
			return
		}
		logger.Error("analysis failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Drift analysis failed",
			Code:  "ANALYSIS_FAILED",
		})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Report:       result.Report,
		Warnings:     result.Warnings,
		SkippedFiles: result.SkippedFiles,
	})
}

// HandleGetReport handles GET /v1/drift/reports/:id.
func (h *Handlers) HandleGetReport(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.svc.logger.With("request_id", requestID, "handler", "HandleGetReport")

	reportID := c.Param("id")
	rep, err := h.svc.Report(reportID)
	if err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "No report with id " + reportID,
				Code:  "REPORT_NOT_FOUND",
			})
			return
		}
		logger.Error("report lookup failed", "report_id", reportID, "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Report lookup failed",
			Code:  "STORE_ERROR",
		})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// HandleLatestReport handles GET /v1/drift/reports/latest.
//
// The repo query parameter selects which repository's newest report to
// return.
func (h *Handlers) HandleLatestReport(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.svc.logger.With("request_id", requestID, "handler", "HandleLatestReport")

	repoName := c.Query("repo")
	if repoName == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Query parameter repo is required",
			Code:  "MISSING_REPO",
		})
		return
	}

	rep, err := h.svc.LatestReport(repoName)
	if err != nil {
		if errors.Is(err, store.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: "No reports for repo " + repoName,
				Code:  "REPORT_NOT_FOUND",
			})
			return
		}
		logger.Error("latest report lookup failed", "repo", repoName, "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "Report lookup failed",
			Code:  "STORE_ERROR",
		})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// HandleHealth handles GET /v1/drift/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getOrCreateRequestID returns the inbound X-Request-ID or mints one.
func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.New().String()
}
