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

// Classify aggregates issue severities.
//
// Description:
//
//	Returns the per-severity counts (always carrying all three keys,
//	zero-filled) and the overall severity: the highest severity with a
//	non-zero count, or NONE when the issue list is empty. Total function,
//	never fails.
func Classify(issues []Issue) (Severity, SeveritySummary) {
	var summary SeveritySummary
	overall := SeverityNone

	for _, issue := range issues {
		switch issue.Severity {
		case SeverityCritical:
			summary.Critical++
		case SeverityMajor:
			summary.Major++
		case SeverityMinor:
			summary.Minor++
		}
		if issue.Severity.rank() > overall.rank() {
			overall = issue.Severity
		}
	}

	return overall, summary
}

// CountByType tallies issues per issue type, for report statistics.
func CountByType(issues []Issue) map[IssueType]int {
	counts := make(map[IssueType]int, 4)
	for _, issue := range issues {
		counts[issue.Type]++
	}
	return counts
}
