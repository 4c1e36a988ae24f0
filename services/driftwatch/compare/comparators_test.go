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
	"strings"
	"testing"

	"github.com/AleutianAI/driftwatch/services/driftwatch/symbols"
)

func codeSet(syms ...symbols.CodeSymbol) *symbols.CodeSymbolSet {
	set := symbols.NewCodeSymbolSet()
	for _, s := range syms {
		set.Add(s)
	}
	return set
}

func docSet(syms ...symbols.DocSymbol) *symbols.DocSymbolSet {
	set := symbols.NewDocSymbolSet()
	for _, s := range syms {
		set.Add(s)
	}
	return set
}

func TestSymbolDrift(t *testing.T) {
	t.Run("undocumented generic symbol", func(t *testing.T) {
		code := codeSet(
			symbols.CodeSymbol{Key: "clamp", Category: symbols.CategoryGeneric},
			symbols.CodeSymbol{Key: "Retry", Category: symbols.CategoryGeneric},
		)
		docs := docSet(symbols.DocSymbol{Key: "Retry", Category: symbols.CategoryGeneric, SourceFile: "u.md"})

		issues := SymbolDrift(code, docs)
		if len(issues) != 1 {
			t.Fatalf("Expected 1 issue, got %d: %+v", len(issues), issues)
		}
		if issues[0].Type != IssueSymbolUndocumented || issues[0].Symbol != "clamp" {
			t.Errorf("Unexpected issue: %+v", issues[0])
		}
		if issues[0].Severity != SeverityMinor {
			t.Errorf("Severity = %s, want MINOR", issues[0].Severity)
		}
	})

	t.Run("obsolete documentation reference", func(t *testing.T) {
		code := codeSet()
		docs := docSet(symbols.DocSymbol{Key: "removedFunc", Category: symbols.CategoryGeneric, SourceFile: "old.md"})

		issues := SymbolDrift(code, docs)
		if len(issues) != 1 {
			t.Fatalf("Expected 1 issue, got %d", len(issues))
		}
		if issues[0].Type != IssueDocumentationObsolete {
			t.Errorf("Type = %s, want DOCUMENTATION_OBSOLETE", issues[0].Type)
		}
		if !strings.Contains(issues[0].Description, "old.md") {
			t.Errorf("Description should name the source file: %q", issues[0].Description)
		}
	})

	t.Run("obsolete direction covers all categories once per key", func(t *testing.T) {
		code := codeSet()
		docs := docSet(
			symbols.DocSymbol{Key: "GET /gone", Category: symbols.CategoryAPI, SourceFile: "api.md"},
			symbols.DocSymbol{Key: "Gone", Category: symbols.CategorySchema, SourceFile: "m.md"},
			symbols.DocSymbol{Key: "Gone", Category: symbols.CategoryGeneric, SourceFile: "z.md"},
		)

		issues := SymbolDrift(code, docs)
		if len(issues) != 2 {
			t.Fatalf("Expected one issue per unique key, got %d: %+v", len(issues), issues)
		}
	})
}

func TestAPIDrift(t *testing.T) {
	code := codeSet(
		symbols.CodeSymbol{Key: "GET /users", Category: symbols.CategoryAPI},
		symbols.CodeSymbol{Key: "POST /orders", Category: symbols.CategoryAPI},
	)
	docs := docSet(symbols.DocSymbol{Key: "GET /users", Category: symbols.CategoryAPI, SourceFile: "api.md"})

	issues := APIDrift(code, docs)
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d: %+v", len(issues), issues)
	}
	if issues[0].Type != IssueAPIUndocumented || issues[0].Symbol != "POST /orders" {
		t.Errorf("Unexpected issue: %+v", issues[0])
	}
	if issues[0].Severity != SeverityCritical {
		t.Errorf("Severity = %s, want CRITICAL", issues[0].Severity)
	}
}

func TestAPIDrift_DoesNotReportRemovedEndpoints(t *testing.T) {
	// A doc API symbol absent from code belongs to SymbolDrift's obsolete
	// direction; APIDrift must not emit it a second time.
	code := codeSet()
	docs := docSet(symbols.DocSymbol{Key: "GET /removed", Category: symbols.CategoryAPI, SourceFile: "api.md"})

	if issues := APIDrift(code, docs); len(issues) != 0 {
		t.Errorf("Expected no issues, got %+v", issues)
	}

	all := All(code, docs)
	if len(all) != 1 || all[0].Type != IssueDocumentationObsolete {
		t.Errorf("Removed endpoint should surface exactly once as obsolete, got %+v", all)
	}
}

func TestSchemaDrift(t *testing.T) {
	code := codeSet(
		symbols.CodeSymbol{Key: "User", Category: symbols.CategorySchema},
		symbols.CodeSymbol{Key: "User.email", Category: symbols.CategorySchema},
	)
	docs := docSet(symbols.DocSymbol{Key: "User", Category: symbols.CategorySchema, SourceFile: "m.md"})

	issues := SchemaDrift(code, docs)
	if len(issues) != 1 {
		t.Fatalf("Expected 1 issue, got %d", len(issues))
	}
	if issues[0].Type != IssueSchemaUndocumented || issues[0].Severity != SeverityMajor {
		t.Errorf("Unexpected issue: %+v", issues[0])
	}
	if issues[0].Symbol != "User.email" {
		t.Errorf("Symbol = %q, want User.email", issues[0].Symbol)
	}
}

func TestAll_EmissionOrder(t *testing.T) {
	code := codeSet(
		symbols.CodeSymbol{Key: "zHelper", Category: symbols.CategoryGeneric},
		symbols.CodeSymbol{Key: "GET /a", Category: symbols.CategoryAPI},
		symbols.CodeSymbol{Key: "Model", Category: symbols.CategorySchema},
	)
	docs := docSet()

	issues := All(code, docs)
	wantTypes := []IssueType{IssueSymbolUndocumented, IssueAPIUndocumented, IssueSchemaUndocumented}
	if len(issues) != len(wantTypes) {
		t.Fatalf("Expected %d issues, got %d: %+v", len(wantTypes), len(issues), issues)
	}
	for i, want := range wantTypes {
		if issues[i].Type != want {
			t.Errorf("issues[%d].Type = %s, want %s", i, issues[i].Type, want)
		}
	}
}

func TestAll_NoDrift(t *testing.T) {
	code := codeSet(symbols.CodeSymbol{Key: "GET /users", Category: symbols.CategoryAPI})
	docs := docSet(symbols.DocSymbol{Key: "GET /users", Category: symbols.CategoryAPI, SourceFile: "api.md"})

	if issues := All(code, docs); len(issues) != 0 {
		t.Errorf("Expected no issues, got %+v", issues)
	}
}
