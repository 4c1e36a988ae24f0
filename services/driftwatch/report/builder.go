// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report assembles the final drift report artifact.
//
// # Description
//
// The report is the contractual output consumed by the next pipeline
// stage. Its shape never varies with outcome: a clean run still carries an
// empty issues array and a zero-filled severity summary. The report id and
// generation timestamp are the only non-deterministic fields; everything
// else is a pure function of the run's inputs.
//
// # Thread Safety
//
// A DriftReport is immutable after Build returns. Builder is safe for
// concurrent use.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/driftwatch/services/driftwatch/compare"
)

// RepoMeta is the repo/commit provenance carried in the report.
type RepoMeta struct {
	Name   string `json:"name"`
	Commit string `json:"commit"`
}

// Statistics is the report's statistics block.
type Statistics struct {
	TotalCodeSymbols           int `json:"total_code_symbols"`
	TotalDriftIssues           int `json:"total_drift_issues"`
	APIDriftCount              int `json:"api_drift_count"`
	SchemaDriftCount           int `json:"schema_drift_count"`
	UndocumentedCount          int `json:"undocumented_count"`
	ObsoleteDocumentationCount int `json:"obsolete_documentation_count"`
}

// DriftReport is the final output artifact. Created once per run, never
// mutated afterwards, persisted by the caller.
type DriftReport struct {
	ReportID                string                  `json:"report_id"`
	GeneratedAt             string                  `json:"generated_at"`
	Repo                    RepoMeta                `json:"repo"`
	DriftDetected           bool                    `json:"drift_detected"`
	OverallSeverity         compare.Severity        `json:"overall_severity"`
	SeveritySummary         compare.SeveritySummary `json:"severity_summary"`
	Issues                  []compare.Issue         `json:"issues"`
	ValidatedDocsBucketPath string                  `json:"validated_docs_bucket_path"`
	Statistics              Statistics              `json:"statistics"`
}

// Builder assembles DriftReports.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder that timestamps reports with the wall
// clock. Pass a fixed clock through NewBuilderWithClock in tests.
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// NewBuilderWithClock returns a Builder using the given clock. A nil
// clock falls back to time.Now.
func NewBuilderWithClock(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// Build assembles a report from the run's computed pieces.
//
// Description:
//
//	Generates a fresh random report id, stamps the generation time in
//	UTC RFC 3339, and fills every contract field. A nil issues slice is
//	normalized to an empty one so "issues": [] is always emitted.
//
// Inputs:
//
//	repo - Repo/commit provenance.
//	issues - Ordered issue list from the comparators. May be nil.
//	summary - Per-severity counts from the classifier.
//	overall - Overall severity from the classifier.
//	validatedPath - The docs bucket path the run validated against.
//	stats - The run's statistics block.
//
// Outputs:
//
//	*DriftReport - The assembled report. Never nil.
func (b *Builder) Build(repo RepoMeta, issues []compare.Issue, summary compare.SeveritySummary,
	overall compare.Severity, validatedPath string, stats Statistics) *DriftReport {

	if issues == nil {
		issues = []compare.Issue{}
	}

	return &DriftReport{
		ReportID:                uuid.New().String(),
		GeneratedAt:             b.now().UTC().Format(time.RFC3339),
		Repo:                    repo,
		DriftDetected:           len(issues) > 0,
		OverallSeverity:         overall,
		SeveritySummary:         summary,
		Issues:                  issues,
		ValidatedDocsBucketPath: validatedPath,
		Statistics:              stats,
	}
}
