// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package storage defines the documentation-store adapter the drift
// pipeline fetches generated documentation files through, plus the GCS
// and local-filesystem implementations.
//
// # Description
//
// The pipeline treats the store as an external collaborator: it asks for
// a batch of named files under a path prefix and accepts that any subset
// of them may fail individually. Retry and backoff, if any, belong to the
// adapter; the pipeline only decides whether to continue without a file.
package storage

import "context"

// FileResult is the outcome of fetching one documentation file.
// Exactly one of Content or Err is meaningful.
type FileResult struct {
	// Path is the file name as listed in the snapshot manifest.
	Path string

	// Content is the file's bytes when the fetch succeeded.
	Content []byte

	// Err is the per-file failure, nil on success.
	Err error
}

// Fetcher retrieves documentation files for a snapshot.
//
// Implementations must return one FileResult per requested name, in the
// order the names were given, with per-file failures recorded in
// FileResult.Err rather than aborting the batch. The returned error is
// reserved for batch-level failure (context cancellation, adapter
// shutdown); callers treat it as all files failed.
type Fetcher interface {
	Fetch(ctx context.Context, prefix string, names []string) ([]FileResult, error)
}
