// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/driftwatch/services/driftwatch/compare"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestBuild_CleanRun(t *testing.T) {
	b := NewBuilderWithClock(fixedClock)

	rep := b.Build(RepoMeta{Name: "svc", Commit: "abc"}, nil,
		compare.SeveritySummary{}, compare.SeverityNone, "docs/svc/abc", Statistics{TotalCodeSymbols: 4})

	if rep.DriftDetected {
		t.Error("Clean run must not report drift")
	}
	if rep.OverallSeverity != compare.SeverityNone {
		t.Errorf("OverallSeverity = %s, want NONE", rep.OverallSeverity)
	}
	if rep.Issues == nil || len(rep.Issues) != 0 {
		t.Errorf("Issues must be an empty non-nil slice, got %#v", rep.Issues)
	}
	if rep.GeneratedAt != "2026-03-14T09:26:53Z" {
		t.Errorf("GeneratedAt = %q", rep.GeneratedAt)
	}
	if _, err := uuid.Parse(rep.ReportID); err != nil {
		t.Errorf("ReportID %q is not a UUID: %v", rep.ReportID, err)
	}
	if rep.ValidatedDocsBucketPath != "docs/svc/abc" {
		t.Errorf("ValidatedDocsBucketPath = %q", rep.ValidatedDocsBucketPath)
	}
}

func TestBuild_WithIssues(t *testing.T) {
	b := NewBuilderWithClock(fixedClock)
	issues := []compare.Issue{
		{Type: compare.IssueAPIUndocumented, Severity: compare.SeverityCritical, Symbol: "GET /users"},
	}

	rep := b.Build(RepoMeta{Name: "svc", Commit: "abc"}, issues,
		compare.SeveritySummary{Critical: 1}, compare.SeverityCritical, "docs/svc/abc",
		Statistics{TotalCodeSymbols: 1, TotalDriftIssues: 1, APIDriftCount: 1})

	if !rep.DriftDetected {
		t.Error("Expected drift_detected")
	}
	if rep.SeveritySummary.Critical != 1 {
		t.Errorf("Critical = %d, want 1", rep.SeveritySummary.Critical)
	}
	if rep.Statistics.APIDriftCount != 1 {
		t.Errorf("APIDriftCount = %d, want 1", rep.Statistics.APIDriftCount)
	}
}

func TestBuild_JSONContract(t *testing.T) {
	b := NewBuilderWithClock(fixedClock)
	rep := b.Build(RepoMeta{Name: "svc", Commit: "abc"}, nil,
		compare.SeveritySummary{}, compare.SeverityNone, "docs/svc/abc", Statistics{})

	encoded, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for _, field := range []string{
		`"report_id"`, `"generated_at"`, `"repo"`, `"drift_detected"`,
		`"overall_severity"`, `"severity_summary"`, `"issues":[]`,
		`"validated_docs_bucket_path"`, `"statistics"`,
		`"total_code_symbols"`, `"total_drift_issues"`, `"api_drift_count"`,
		`"schema_drift_count"`, `"undocumented_count"`, `"obsolete_documentation_count"`,
		`"CRITICAL":0`, `"MAJOR":0`, `"MINOR":0`,
	} {
		if !strings.Contains(string(encoded), field) {
			t.Errorf("Encoded report missing %s: %s", field, encoded)
		}
	}
}

func TestBuild_FreshIDPerReport(t *testing.T) {
	b := NewBuilder()
	a := b.Build(RepoMeta{}, nil, compare.SeveritySummary{}, compare.SeverityNone, "", Statistics{})
	c := b.Build(RepoMeta{}, nil, compare.SeveritySummary{}, compare.SeverityNone, "", Statistics{})
	if a.ReportID == c.ReportID {
		t.Error("Each report must get a fresh id")
	}
}
