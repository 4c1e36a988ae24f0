// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package symbols

import (
	"reflect"
	"strings"
	"testing"
)

func TestIndexDocFiles_Routes(t *testing.T) {
	files := []DocFile{{
		Path: "api.md",
		Content: []byte(`# API Reference

GET /users returns the user list.

| POST | /orders |
| DELETE | /orders/{id} |

The endpoint ` + "`/health`" + ` is unauthenticated.
`),
	}}

	result := IndexDocFiles(files)

	want := []string{"/health", "DELETE /orders/{id}", "GET /users", "POST /orders"}
	if got := result.Set.KeysInCategory(CategoryAPI); !reflect.DeepEqual(got, want) {
		t.Errorf("API keys = %v, want %v", got, want)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("Unexpected skipped files: %v", result.Skipped)
	}
}

func TestIndexDocFiles_MethodPathDoesNotAlsoEmitBarePath(t *testing.T) {
	result := IndexDocFiles([]DocFile{{
		Path:    "api.md",
		Content: []byte("GET /users"),
	}})

	if result.Set.HasInCategory(CategoryAPI, "/users") {
		t.Error("Method-qualified route must not also emit the bare path symbol")
	}
	if !result.Set.HasInCategory(CategoryAPI, "GET /users") {
		t.Error("Expected GET /users symbol")
	}
}

func TestIndexDocFiles_SchemaSections(t *testing.T) {
	files := []DocFile{{
		Path: "models.md",
		Content: []byte(`## Model: User

Fields: ` + "`User.id`" + `, ` + "`User.email`" + `

## Usage

The helper ` + "`clamp`" + ` is internal.
`),
	}}

	result := IndexDocFiles(files)

	wantSchema := []string{"User", "User.email", "User.id"}
	if got := result.Set.KeysInCategory(CategorySchema); !reflect.DeepEqual(got, wantSchema) {
		t.Errorf("Schema keys = %v, want %v", got, wantSchema)
	}

	// "## Usage" ends the schema section, so clamp is generic.
	if !result.Set.HasInCategory(CategoryGeneric, "clamp") {
		t.Error("Expected clamp as a generic symbol outside the schema section")
	}
	if result.Set.HasInCategory(CategorySchema, "clamp") {
		t.Error("clamp must not be classified as schema")
	}
}

func TestIndexDocFiles_HeadingSubjectVariants(t *testing.T) {
	tests := []struct {
		heading string
		want    string
	}{
		{"## Model: User", "User"},
		{"### Schema `Order`", "Order"},
		{"# The users table", "users"},
		{"## Models", ""}, // keyword only, no subject
	}

	for _, tc := range tests {
		t.Run(tc.heading, func(t *testing.T) {
			result := IndexDocFiles([]DocFile{{Path: "m.md", Content: []byte(tc.heading)}})
			if tc.want == "" {
				if result.Set.Len() != 0 {
					t.Errorf("Expected no symbols, got %v", result.Set.Keys())
				}
				return
			}
			if !result.Set.HasInCategory(CategorySchema, tc.want) {
				t.Errorf("Expected schema symbol %q, got %v", tc.want, result.Set.Keys())
			}
		})
	}
}

func TestIndexDocFiles_SkipsEmptyAndBinary(t *testing.T) {
	files := []DocFile{
		{Path: "b_empty.md", Content: nil},
		{Path: "a_binary.md", Content: []byte{0xff, 0xfe, 0x00, 0x41}},
		{Path: "c_good.md", Content: []byte("`Widget` docs")},
	}

	result := IndexDocFiles(files)

	wantSkipped := []string{"a_binary.md", "b_empty.md"}
	if !reflect.DeepEqual(result.Skipped, wantSkipped) {
		t.Errorf("Skipped = %v, want %v", result.Skipped, wantSkipped)
	}
	if !result.Set.Has("Widget") {
		t.Error("Good file should still be indexed")
	}
}

func TestIndexDocFiles_SingleHugeLine(t *testing.T) {
	// Minified generated artifacts arrive as one multi-megabyte line.
	// The file must still be indexed, not silently dropped.
	content := "`documented_symbol` " + strings.Repeat("x", 2*1024*1024)

	result := IndexDocFiles([]DocFile{{Path: "big.json", Content: []byte(content)}})

	if !result.Set.Has("documented_symbol") {
		t.Error("Expected documented_symbol from the oversized line")
	}
	if len(result.Skipped) != 0 {
		t.Errorf("Readable file must not be skipped, got %v", result.Skipped)
	}
}

func TestIndexDocFiles_FirstOccurrenceProvenanceIsStable(t *testing.T) {
	// Files arrive out of order; sorted-path processing means a.md wins
	// the provenance for the shared symbol.
	files := []DocFile{
		{Path: "z.md", Content: []byte("`Shared` from z")},
		{Path: "a.md", Content: []byte("`Shared` from a")},
	}

	result := IndexDocFiles(files)
	sym, ok := result.Set.Lookup("Shared")
	if !ok {
		t.Fatal("Expected Shared symbol")
	}
	if sym.SourceFile != "a.md" {
		t.Errorf("Provenance = %q, want a.md", sym.SourceFile)
	}
}

func TestIndexDocFiles_NoFiles(t *testing.T) {
	result := IndexDocFiles(nil)
	if result.Set == nil || result.Set.Len() != 0 {
		t.Errorf("Expected empty non-nil set, got %+v", result.Set)
	}
}
