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
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFetcher_Fetch(t *testing.T) {
	root := t.TempDir()
	docsDir := filepath.Join(root, "docs", "svc")
	if err := os.MkdirAll(docsDir, 0750); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(docsDir, "api.md"), []byte("# API"), 0640); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	fetcher := NewLocalFetcher(root)
	results, err := fetcher.Fetch(context.Background(), "docs/svc", []string{"api.md", "missing.md"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Path != "api.md" || results[0].Err != nil {
		t.Errorf("Unexpected result for api.md: %+v", results[0])
	}
	if string(results[0].Content) != "# API" {
		t.Errorf("Content = %q", results[0].Content)
	}

	if results[1].Path != "missing.md" || results[1].Err == nil {
		t.Errorf("Expected per-file error for missing.md, got %+v", results[1])
	}
}

func TestLocalFetcher_RejectsPathTraversal(t *testing.T) {
	root := t.TempDir()
	fetcher := NewLocalFetcher(root)

	results, err := fetcher.Fetch(context.Background(), "docs", []string{"../../etc/passwd"})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if results[0].Err == nil {
		t.Error("Expected traversal to be rejected per file")
	}
}

func TestLocalFetcher_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := NewLocalFetcher(t.TempDir())
	if _, err := fetcher.Fetch(ctx, "docs", []string{"a.md"}); err == nil {
		t.Error("Expected batch error on canceled context")
	}
}
