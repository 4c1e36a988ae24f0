// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package input parses and validates the two upstream artifacts the drift
// pipeline consumes: the code-analysis impact report and the documentation
// snapshot manifest.
//
// # Description
//
// The upstream producers emit loosely-typed JSON. This package is the strict
// boundary: parsing either yields a validated value or a MalformedInputError.
// Optional impact-report sections default-construct to empty values here so
// downstream indexers and comparators never null-check.
//
// # Thread Safety
//
// All parsed values are immutable after return and safe to share across
// goroutines.
package input

// RepoMeta identifies the repository and commit an analysis run covers.
type RepoMeta struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
	Commit string `json:"commit"`
}

// Endpoint is one API endpoint descriptor from the impact report's
// api_contract section.
type Endpoint struct {
	// NormalizedKey is the producer-supplied comparison key, if present.
	// When empty, indexing synthesizes "{METHOD} {path}".
	NormalizedKey string `json:"normalized_key,omitempty"`

	Method string `json:"method"`
	Path   string `json:"path"`
}

// APIContract is the current-schema API surface description.
type APIContract struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// DataModel is one schema/data-model descriptor. Fields, when provided,
// are the model's field names; they become nested field-path symbols.
type DataModel struct {
	Fields []string `json:"fields,omitempty"`
}

// FileEntry is one legacy-schema file record with its extracted symbols.
type FileEntry struct {
	Path    string   `json:"path"`
	Symbols []string `json:"symbols"`

	// Impacts are the producer's impact tags for this file (e.g. "api").
	Impacts []string `json:"impacts"`
}

// ImpactReport is the validated code-analysis artifact.
//
// Either the current schema (APIContract/DataModels) or the legacy schema
// (Files) may be populated; both may be present, in which case indexing
// prefers the current schema. Absent sections are empty, never nil maps
// with semantic meaning.
type ImpactReport struct {
	Repo        RepoMeta             `json:"repo"`
	APIContract *APIContract         `json:"api_contract,omitempty"`
	DataModels  map[string]DataModel `json:"data_models,omitempty"`
	Files       []FileEntry          `json:"files,omitempty"`
}

// HasCurrentSchema reports whether the report carries the current
// api_contract/data_models shape.
func (r *ImpactReport) HasCurrentSchema() bool {
	return r.APIContract != nil || len(r.DataModels) > 0
}

// DocSnapshot is the validated documentation snapshot manifest.
//
// All four fields are required; a snapshot missing any of them is a hard
// input error (the run cannot even name the files it should fetch).
type DocSnapshot struct {
	SnapshotID     string   `json:"snapshot_id" validate:"required"`
	Commit         string   `json:"commit" validate:"required"`
	DocsBucketPath string   `json:"docs_bucket_path" validate:"required"`
	GeneratedFiles []string `json:"generated_files" validate:"required"`
}
