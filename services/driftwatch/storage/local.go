// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalFetcher serves documentation files from a local directory tree.
//
// Used by the CLI (analyzing docs that were generated locally) and by
// tests. The snapshot's bucket path prefix maps onto a subdirectory of
// Root.
//
// Thread Safety: LocalFetcher is safe for concurrent use.
type LocalFetcher struct {
	// Root is the directory the prefix is resolved under.
	Root string
}

// NewLocalFetcher creates a fetcher rooted at the given directory.
func NewLocalFetcher(root string) *LocalFetcher {
	return &LocalFetcher{Root: root}
}

// Fetch reads the named files under root/prefix.
//
// Per-file read failures are recorded in the results; the batch itself
// only fails on context cancellation. Path traversal outside the root is
// rejected per file.
func (f *LocalFetcher) Fetch(ctx context.Context, prefix string, names []string) ([]FileResult, error) {
	results := make([]FileResult, len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch documentation batch: %w", err)
		}
		results[i] = f.readFile(prefix, name)
	}
	return results, nil
}

func (f *LocalFetcher) readFile(prefix, name string) FileResult {
	full := filepath.Join(f.Root, filepath.FromSlash(prefix), filepath.FromSlash(name))

	root, err := filepath.Abs(f.Root)
	if err != nil {
		return FileResult{Path: name, Err: fmt.Errorf("resolve root %s: %w", f.Root, err)}
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return FileResult{Path: name, Err: fmt.Errorf("resolve %s: %w", full, err)}
	}
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return FileResult{Path: name, Err: fmt.Errorf("path %s escapes document root", name)}
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return FileResult{Path: name, Err: fmt.Errorf("read %s: %w", abs, err)}
	}
	return FileResult{Path: name, Content: content}
}

// Ensure LocalFetcher implements Fetcher.
var _ Fetcher = (*LocalFetcher)(nil)
