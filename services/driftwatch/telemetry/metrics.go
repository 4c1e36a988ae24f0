// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package telemetry exposes Prometheus metrics for the drift pipeline.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the pipeline's Prometheus collectors.
//
// A nil *Metrics is valid and records nothing, so library code can call
// the Record methods unconditionally.
type Metrics struct {
	runsTotal     prometheus.Counter
	runDuration   prometheus.Histogram
	issuesTotal   *prometheus.CounterVec
	fetchFailures prometheus.Counter
	skippedFiles  prometheus.Counter
}

// NewMetrics registers the drift collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "driftwatch_runs_total",
			Help: "Completed drift analysis runs.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "driftwatch_run_duration_seconds",
			Help:    "Wall-clock duration of drift analysis runs.",
			Buckets: prometheus.DefBuckets,
		}),
		issuesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "driftwatch_issues_total",
			Help: "Drift issues detected, by severity.",
		}, []string{"severity"}),
		fetchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "driftwatch_doc_fetch_failures_total",
			Help: "Documentation files that could not be fetched.",
		}),
		skippedFiles: factory.NewCounter(prometheus.CounterOpts{
			Name: "driftwatch_doc_files_skipped_total",
			Help: "Documentation files skipped as empty or unparseable.",
		}),
	}
}

// RecordRun records one completed run and its duration.
func (m *Metrics) RecordRun(duration time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.Inc()
	m.runDuration.Observe(duration.Seconds())
}

// RecordIssue counts one detected issue at the given severity.
func (m *Metrics) RecordIssue(severity string) {
	if m == nil {
		return
	}
	m.issuesTotal.WithLabelValues(severity).Inc()
}

// RecordFetchFailure counts one unfetchable documentation file.
func (m *Metrics) RecordFetchFailure() {
	if m == nil {
		return
	}
	m.fetchFailures.Inc()
}

// RecordSkippedFile counts one skipped documentation file.
func (m *Metrics) RecordSkippedFile() {
	if m == nil {
		return
	}
	m.skippedFiles.Inc()
}
