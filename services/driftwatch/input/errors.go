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
	"errors"
	"fmt"
)

// Input errors.
var (
	// ErrMalformedInput is the sentinel wrapped by every MalformedInputError.
	// Use errors.Is(err, ErrMalformedInput) to detect the class.
	ErrMalformedInput = errors.New("malformed input document")
)

// MalformedInputError reports an input artifact that failed strict parsing.
//
// It carries the artifact name ("impact_report" or "doc_snapshot") and,
// when the failure is a missing required field, the field's JSON name.
type MalformedInputError struct {
	// Artifact identifies which input document failed.
	Artifact string

	// Field is the JSON field that failed validation, if any.
	Field string

	// Err is the underlying cause (decode error, validation error).
	Err error
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: required field %q is missing or invalid", e.Artifact, e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Artifact, e.Err)
	}
	return e.Artifact + ": malformed document"
}

// Unwrap allows errors.Is matching against ErrMalformedInput.
func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}
