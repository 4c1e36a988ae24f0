// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package input

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. validator.Validate is safe
// for concurrent use and caches struct metadata, so one instance serves
// the whole package.
var validate = validator.New()

// ParseImpactReport decodes and validates an impact report document.
//
// Description:
//
//	Decodes the raw JSON into an ImpactReport. The document must be a JSON
//	object; anything else (array, scalar, truncated bytes) is a
//	MalformedInputError. Every sub-section is optional: a report with no
//	api_contract, data_models, or files parses successfully and indexes to
//	an empty symbol set.
//
// Inputs:
//
//	data - Raw JSON bytes of impact_report.json.
//
// Outputs:
//
//	*ImpactReport - The validated report. Never nil on success.
//	error - *MalformedInputError if the document is not a JSON object.
func ParseImpactReport(data []byte) (*ImpactReport, error) {
	// Reject non-object documents up front so the error is about shape,
	// not about some field's type.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &MalformedInputError{Artifact: "impact_report", Err: err}
	}
	// Unmarshal accepts a JSON null, leaving the map nil.
	if probe == nil {
		return nil, &MalformedInputError{Artifact: "impact_report", Err: errors.New("document is not a JSON object")}
	}

	var report ImpactReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, &MalformedInputError{Artifact: "impact_report", Err: err}
	}
	return &report, nil
}

// ParseDocSnapshot decodes and validates a documentation snapshot manifest.
//
// Description:
//
//	Decodes the raw JSON into a DocSnapshot and enforces that all four
//	required fields are present: snapshot_id, commit, docs_bucket_path,
//	generated_files. Unlike the impact report, nothing here is optional;
//	a manifest that cannot name its files cannot drive a run.
//
// Inputs:
//
//	data - Raw JSON bytes of doc_snapshot.json.
//
// Outputs:
//
//	*DocSnapshot - The validated snapshot. Never nil on success.
//	error - *MalformedInputError naming the missing field, or wrapping
//	        the decode error.
func ParseDocSnapshot(data []byte) (*DocSnapshot, error) {
	var snap DocSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &MalformedInputError{Artifact: "doc_snapshot", Err: err}
	}

	if err := validate.Struct(&snap); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, &MalformedInputError{
				Artifact: "doc_snapshot",
				Field:    jsonFieldName(verrs[0].StructField()),
				Err:      err,
			}
		}
		return nil, &MalformedInputError{Artifact: "doc_snapshot", Err: err}
	}
	return &snap, nil
}

// jsonFieldName maps a DocSnapshot struct field name to its JSON name.
func jsonFieldName(structField string) string {
	switch structField {
	case "SnapshotID":
		return "snapshot_id"
	case "Commit":
		return "commit"
	case "DocsBucketPath":
		return "docs_bucket_path"
	case "GeneratedFiles":
		return "generated_files"
	default:
		return structField
	}
}
