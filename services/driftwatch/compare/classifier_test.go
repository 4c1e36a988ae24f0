// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package compare

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		issues      []Issue
		wantOverall Severity
		wantSummary SeveritySummary
	}{
		{
			name:        "empty list is NONE",
			issues:      nil,
			wantOverall: SeverityNone,
		},
		{
			name: "minor only",
			issues: []Issue{
				{Severity: SeverityMinor},
				{Severity: SeverityMinor},
			},
			wantOverall: SeverityMinor,
			wantSummary: SeveritySummary{Minor: 2},
		},
		{
			name: "major dominates minor",
			issues: []Issue{
				{Severity: SeverityMinor},
				{Severity: SeverityMajor},
			},
			wantOverall: SeverityMajor,
			wantSummary: SeveritySummary{Major: 1, Minor: 1},
		},
		{
			name: "critical dominates everything",
			issues: []Issue{
				{Severity: SeverityMajor},
				{Severity: SeverityCritical},
				{Severity: SeverityMinor},
			},
			wantOverall: SeverityCritical,
			wantSummary: SeveritySummary{Critical: 1, Major: 1, Minor: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			overall, summary := Classify(tc.issues)
			if overall != tc.wantOverall {
				t.Errorf("overall = %s, want %s", overall, tc.wantOverall)
			}
			if summary != tc.wantSummary {
				t.Errorf("summary = %+v, want %+v", summary, tc.wantSummary)
			}
		})
	}
}

func TestSeveritySummary_JSONAlwaysCarriesAllKeys(t *testing.T) {
	encoded, err := json.Marshal(SeveritySummary{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"CRITICAL":0,"MAJOR":0,"MINOR":0}`
	if string(encoded) != want {
		t.Errorf("JSON = %s, want %s", encoded, want)
	}
}

func TestCountByType(t *testing.T) {
	issues := []Issue{
		{Type: IssueSymbolUndocumented},
		{Type: IssueSymbolUndocumented},
		{Type: IssueAPIUndocumented},
		{Type: IssueDocumentationObsolete},
	}

	counts := CountByType(issues)
	if counts[IssueSymbolUndocumented] != 2 {
		t.Errorf("SYMBOL_UNDOCUMENTED = %d, want 2", counts[IssueSymbolUndocumented])
	}
	if counts[IssueAPIUndocumented] != 1 || counts[IssueDocumentationObsolete] != 1 {
		t.Errorf("Unexpected counts: %v", counts)
	}
	if counts[IssueSchemaUndocumented] != 0 {
		t.Errorf("SCHEMA_UNDOCUMENTED = %d, want 0", counts[IssueSchemaUndocumented])
	}
}
