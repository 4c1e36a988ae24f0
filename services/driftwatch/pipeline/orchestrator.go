// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pipeline sequences the drift analysis run: input parsing, code
// indexing, documentation retrieval, doc indexing, comparison,
// classification, and report assembly.
//
// # Description
//
// One Run is a single-shot batch computation over explicit inputs with no
// shared mutable state between runs. Documentation retrieval is the only
// I/O-bound phase; everything else is CPU-bound over immutable snapshots.
//
// The run's contract: the caller always receives either a validation
// error (the input documents are structurally broken) or a complete,
// schema-valid report. Fetch failures, empty snapshots, and an entirely
// unreachable documentation store all still produce a report.
//
// # Thread Safety
//
// Orchestrator is safe for concurrent use; each Run keeps its state in
// locals.
package pipeline

import (
	"context"
	"sort"
	"time"

	"github.com/AleutianAI/driftwatch/pkg/logging"
	"github.com/AleutianAI/driftwatch/services/driftwatch/compare"
	"github.com/AleutianAI/driftwatch/services/driftwatch/input"
	"github.com/AleutianAI/driftwatch/services/driftwatch/report"
	"github.com/AleutianAI/driftwatch/services/driftwatch/storage"
	"github.com/AleutianAI/driftwatch/services/driftwatch/symbols"
	"github.com/AleutianAI/driftwatch/services/driftwatch/telemetry"
)

// Config configures the Orchestrator.
type Config struct {
	// Logger receives state transitions and per-file warnings.
	// Default: logging.Default()
	Logger *logging.Logger

	// Metrics optionally records run outcomes. May be nil.
	Metrics *telemetry.Metrics

	// Clock overrides the report timestamp source. Default: wall clock.
	Clock func() time.Time
}

// Warning records one recovered, non-fatal condition from a run.
type Warning struct {
	// File is the documentation file involved, if any.
	File string `json:"file,omitempty"`

	// Message describes what was skipped or degraded.
	Message string `json:"message"`
}

// RunResult is what a completed run hands back: the report itself plus
// the recovered warnings and skipped files, observable to the caller but
// not part of the persisted report schema.
type RunResult struct {
	Report       *report.DriftReport `json:"report"`
	Warnings     []Warning           `json:"warnings,omitempty"`
	SkippedFiles []string            `json:"skipped_files,omitempty"`
}

// Orchestrator drives drift analysis runs against a documentation store.
type Orchestrator struct {
	fetcher storage.Fetcher
	builder *report.Builder
	logger  *logging.Logger
	metrics *telemetry.Metrics
}

// New creates an Orchestrator.
//
// Inputs:
//
//	fetcher - The documentation store adapter. Must not be nil.
//	cfg - Orchestration options; zero value gets defaults.
//
// Outputs:
//
//	*Orchestrator - Ready to Run.
func New(fetcher storage.Fetcher, cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Orchestrator{
		fetcher: fetcher,
		builder: report.NewBuilderWithClock(cfg.Clock),
		logger:  logger,
		metrics: cfg.Metrics,
	}
}

// Run executes one drift analysis over the two raw input artifacts.
//
// Description:
//
//	Walks the state machine LOADING_INPUTS through DONE. Input documents
//	that fail strict parsing abort the run with a MalformedInputError and
//	no report; every later failure is recovered into warnings and the run
//	still emits a complete report. Per-file fetch failures exclude only
//	that file. A fully unreachable store degrades to the zero-docs case,
//	where every code symbol surfaces as undocumented.
//
// Inputs:
//
//	ctx - Context for the retrieval phase.
//	impactJSON - Raw impact_report.json bytes.
//	snapshotJSON - Raw doc_snapshot.json bytes.
//
// Outputs:
//
//	*RunResult - The report plus warnings. Nil only when err is non-nil.
//	error - *input.MalformedInputError for broken inputs; nil otherwise.
func (o *Orchestrator) Run(ctx context.Context, impactJSON, snapshotJSON []byte) (*RunResult, error) {
	started := time.Now()

	state := StateLoadingInputs
	o.logState(state)

	impact, err := input.ParseImpactReport(impactJSON)
	if err != nil {
		return nil, err
	}
	snapshot, err := input.ParseDocSnapshot(snapshotJSON)
	if err != nil {
		return nil, err
	}

	state = StateIndexingCode
	o.logState(state)
	codeSet := symbols.IndexImpactReport(impact)

	state = StateFetchingDocs
	o.logState(state)
	files, warnings := o.fetchDocs(ctx, snapshot)

	state = StateIndexingDocs
	o.logState(state)
	indexed := symbols.IndexDocFiles(files)
	for _, skipped := range indexed.Skipped {
		o.metrics.RecordSkippedFile()
		o.logger.Warn("documentation file skipped", "file", skipped, "reason", "empty or unparseable")
	}

	state = StateComparing
	o.logState(state)
	issues := compare.All(codeSet, indexed.Set)

	state = StateClassifying
	o.logState(state)
	overall, summary := compare.Classify(issues)

	state = StateBuildingReport
	o.logState(state)
	counts := compare.CountByType(issues)
	rep := o.builder.Build(
		report.RepoMeta{Name: impact.Repo.Name, Commit: impact.Repo.Commit},
		issues,
		summary,
		overall,
		snapshot.DocsBucketPath,
		report.Statistics{
			TotalCodeSymbols:           codeSet.Len(),
			TotalDriftIssues:           len(issues),
			APIDriftCount:              counts[compare.IssueAPIUndocumented],
			SchemaDriftCount:           counts[compare.IssueSchemaUndocumented],
			UndocumentedCount:          counts[compare.IssueSymbolUndocumented],
			ObsoleteDocumentationCount: counts[compare.IssueDocumentationObsolete],
		},
	)

	state = StateDone
	o.logState(state)

	duration := time.Since(started)
	o.metrics.RecordRun(duration)
	for _, issue := range issues {
		o.metrics.RecordIssue(string(issue.Severity))
	}
	o.logger.Info("drift analysis complete",
		"report_id", rep.ReportID,
		"repo", rep.Repo.Name,
		"commit", rep.Repo.Commit,
		"drift_detected", rep.DriftDetected,
		"overall_severity", string(rep.OverallSeverity),
		"issues", len(issues),
		"warnings", len(warnings),
		"duration_ms", duration.Milliseconds(),
	)

	return &RunResult{
		Report:       rep,
		Warnings:     warnings,
		SkippedFiles: indexed.Skipped,
	}, nil
}

// fetchDocs retrieves the snapshot's files, converting every failure
// mode into warnings. Returned files carry only successful fetches.
func (o *Orchestrator) fetchDocs(ctx context.Context, snapshot *input.DocSnapshot) ([]symbols.DocFile, []Warning) {
	// Fetch completion order is nondeterministic; sorting the request
	// list keeps warning order stable (the indexer re-sorts files itself).
	names := make([]string, len(snapshot.GeneratedFiles))
	copy(names, snapshot.GeneratedFiles)
	sort.Strings(names)

	var warnings []Warning

	results, err := o.fetcher.Fetch(ctx, snapshot.DocsBucketPath, names)
	if err != nil {
		o.logger.Error("documentation store unreachable", "prefix", snapshot.DocsBucketPath, "error", err.Error())
		for range names {
			o.metrics.RecordFetchFailure()
		}
		return nil, append(warnings, Warning{
			Message: "documentation store unreachable: " + err.Error(),
		})
	}

	var files []symbols.DocFile
	for _, res := range results {
		if res.Err != nil {
			o.metrics.RecordFetchFailure()
			o.logger.Warn("documentation file fetch failed", "file", res.Path, "error", res.Err.Error())
			warnings = append(warnings, Warning{File: res.Path, Message: res.Err.Error()})
			continue
		}
		files = append(files, symbols.DocFile{Path: res.Path, Content: res.Content})
	}
	return files, warnings
}

func (o *Orchestrator) logState(state State) {
	o.logger.Debug("pipeline state", "state", string(state))
}
