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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all drift service routes with the router.
//
// Description:
//
//	Registers all /v1/drift/* endpoints with the given Gin router group.
//	The router group should already have any required middleware applied.
//
// Endpoints:
//
//	POST /v1/drift/analyze - Run a drift analysis over inlined artifacts
//	GET  /v1/drift/reports/latest - Latest report for a repo (?repo=)
//	GET  /v1/drift/reports/:id - Stored report by id
//	GET  /v1/drift/health - Health check
//
// Example:
//
//	svc := driftwatch.NewService(fetcher, reports, driftwatch.DefaultServiceConfig())
//	handlers := driftwatch.NewHandlers(svc)
//
//	v1 := router.Group("/v1")
//	driftwatch.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	drift := rg.Group("/drift")
	{
		drift.POST("/analyze", handlers.HandleAnalyze)

		// /reports/latest must be registered before /reports/:id so the
		// literal segment wins over the parameter.
		drift.GET("/reports/latest", handlers.HandleLatestReport)
		drift.GET("/reports/:id", handlers.HandleGetReport)

		drift.GET("/health", handlers.HandleHealth)
	}
}
