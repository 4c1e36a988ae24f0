// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package compare holds the pure set-difference comparators that turn the
// two symbol inventories into typed, severity-tagged drift issues, and the
// classifier that aggregates issue severities.
//
// # Thread Safety
//
// Every function in this package is a pure transformation over immutable
// inputs; all are safe for concurrent use.
package compare

// Severity ranks how consequential a drift issue is.
type Severity string

const (
	// SeverityCritical marks a breaking, unreviewed surface change.
	SeverityCritical Severity = "CRITICAL"

	// SeverityMajor marks structural (schema) drift.
	SeverityMajor Severity = "MAJOR"

	// SeverityMinor marks routine symbol-level drift.
	SeverityMinor Severity = "MINOR"

	// SeverityNone means no issues were found.
	SeverityNone Severity = "NONE"
)

// rank orders severities: CRITICAL > MAJOR > MINOR > NONE.
func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityMajor:
		return 2
	case SeverityMinor:
		return 1
	default:
		return 0
	}
}

// IssueType identifies the kind of discrepancy an issue reports.
type IssueType string

const (
	// IssueSymbolUndocumented: a generic code symbol has no documentation
	// reference.
	IssueSymbolUndocumented IssueType = "SYMBOL_UNDOCUMENTED"

	// IssueDocumentationObsolete: documentation references a symbol that
	// no longer exists in the code inventory.
	IssueDocumentationObsolete IssueType = "DOCUMENTATION_OBSOLETE"

	// IssueAPIUndocumented: a code API endpoint has no documentation
	// reference.
	IssueAPIUndocumented IssueType = "API_UNDOCUMENTED"

	// IssueSchemaUndocumented: a code schema symbol has no documentation
	// reference.
	IssueSchemaUndocumented IssueType = "SCHEMA_UNDOCUMENTED"
)

// Issue is one detected discrepancy. Immutable once created.
type Issue struct {
	Type        IssueType `json:"type"`
	Severity    Severity  `json:"severity"`
	Symbol      string    `json:"symbol"`
	Description string    `json:"description"`
}

// SeveritySummary counts issues per severity. All three keys are always
// present in the JSON encoding, zero-filled when absent.
type SeveritySummary struct {
	Critical int `json:"CRITICAL"`
	Major    int `json:"MAJOR"`
	Minor    int `json:"MINOR"`
}
