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
	"fmt"

	"github.com/AleutianAI/driftwatch/services/driftwatch/symbols"
)

// SymbolDrift detects generic undocumented symbols and obsolete
// documentation references.
//
// Description:
//
//	Two directions, both O(|code| + |doc|) hash-set lookups over sorted
//	key lists:
//
//	  - A generic code symbol absent from the doc set ->
//	    SYMBOL_UNDOCUMENTED, MINOR.
//	  - A doc symbol of any category absent from the code set ->
//	    DOCUMENTATION_OBSOLETE, MINOR. One issue per unique key, with the
//	    symbol's first-recorded source file in the description.
//
//	The obsolete direction is the dominant detector in practice:
//	documentation keeps referencing code that was removed.
func SymbolDrift(code *symbols.CodeSymbolSet, docs *symbols.DocSymbolSet) []Issue {
	var issues []Issue

	for _, key := range code.Keys(symbols.CategoryGeneric) {
		if docs.Has(key) {
			continue
		}
		issues = append(issues, Issue{
			Type:        IssueSymbolUndocumented,
			Severity:    SeverityMinor,
			Symbol:      key,
			Description: fmt.Sprintf("code symbol %q has no documentation reference", key),
		})
	}

	for _, key := range docs.Keys() {
		if code.Has(key) {
			continue
		}
		sym, _ := docs.Lookup(key)
		issues = append(issues, Issue{
			Type:     IssueDocumentationObsolete,
			Severity: SeverityMinor,
			Symbol:   key,
			Description: fmt.Sprintf("documentation in %s references %q, which no longer exists in code",
				sym.SourceFile, key),
		})
	}

	return issues
}

// APIDrift detects undocumented API endpoints.
//
// Description:
//
//	Operates only on API-category symbols and only in the undocumented
//	direction: a code API symbol missing from the doc API symbols yields
//	API_UNDOCUMENTED at CRITICAL. The reverse direction (doc API symbol
//	gone from code) is deliberately not re-emitted here; SymbolDrift
//	already reports it as obsolete documentation, and emitting it twice
//	would double count.
func APIDrift(code *symbols.CodeSymbolSet, docs *symbols.DocSymbolSet) []Issue {
	var issues []Issue
	for _, key := range code.Keys(symbols.CategoryAPI) {
		if docs.HasInCategory(symbols.CategoryAPI, key) {
			continue
		}
		issues = append(issues, Issue{
			Type:        IssueAPIUndocumented,
			Severity:    SeverityCritical,
			Symbol:      key,
			Description: fmt.Sprintf("API endpoint %q is not documented", key),
		})
	}
	return issues
}

// SchemaDrift detects undocumented schema symbols.
//
// Description:
//
//	Operates only on schema-category symbols: a code schema symbol
//	missing from the doc schema symbols yields SCHEMA_UNDOCUMENTED at
//	MAJOR.
func SchemaDrift(code *symbols.CodeSymbolSet, docs *symbols.DocSymbolSet) []Issue {
	var issues []Issue
	for _, key := range code.Keys(symbols.CategorySchema) {
		if docs.HasInCategory(symbols.CategorySchema, key) {
			continue
		}
		issues = append(issues, Issue{
			Type:        IssueSchemaUndocumented,
			Severity:    SeverityMajor,
			Symbol:      key,
			Description: fmt.Sprintf("schema symbol %q is not documented", key),
		})
	}
	return issues
}

// All runs the three comparators in their fixed emission order:
// Symbol -> API -> Schema. The combined slice is the canonical issue
// ordering for a run.
func All(code *symbols.CodeSymbolSet, docs *symbols.DocSymbolSet) []Issue {
	issues := SymbolDrift(code, docs)
	issues = append(issues, APIDrift(code, docs)...)
	issues = append(issues, SchemaDrift(code, docs)...)
	return issues
}
