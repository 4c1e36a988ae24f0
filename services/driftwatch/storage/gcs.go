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
	"io"
	"path"

	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// GCSConfig configures the GCS documentation fetcher.
type GCSConfig struct {
	// Bucket is the GCS bucket holding generated documentation.
	Bucket string

	// CredentialsFile is an optional service account key path. When
	// empty, application default credentials are used.
	CredentialsFile string

	// Concurrency bounds parallel object reads per Fetch call.
	// Default: 4
	Concurrency int

	// ReadsPerSecond rate-limits object reads across a Fetch call.
	// Default: 50. Set to 0 to disable limiting.
	ReadsPerSecond float64

	// MaxObjectBytes caps a single documentation file's size.
	// Default: 8MB
	MaxObjectBytes int64
}

// DefaultGCSConfig returns production defaults for the given bucket.
func DefaultGCSConfig(bucket string) GCSConfig {
	return GCSConfig{
		Bucket:         bucket,
		Concurrency:    4,
		ReadsPerSecond: 50,
		MaxObjectBytes: 8 * 1024 * 1024,
	}
}

// GCSFetcher fetches documentation files from a GCS bucket.
//
// Thread Safety: GCSFetcher is safe for concurrent use.
type GCSFetcher struct {
	client  *storage.Client
	cfg     GCSConfig
	limiter *rate.Limiter
}

// NewGCSFetcher creates a fetcher for the configured bucket.
//
// Inputs:
//
//	ctx - Context for client construction.
//	cfg - Fetcher configuration. Bucket is required.
//
// Outputs:
//
//	*GCSFetcher - The fetcher. Caller must Close() it when done.
//	error - Non-nil if the bucket is unset or the client cannot be built.
func NewGCSFetcher(ctx context.Context, cfg GCSConfig) (*GCSFetcher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs fetcher: bucket is required")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.MaxObjectBytes <= 0 {
		cfg.MaxObjectBytes = 8 * 1024 * 1024
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GCS storage client: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.ReadsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.ReadsPerSecond), cfg.Concurrency)
	}

	return &GCSFetcher{client: client, cfg: cfg, limiter: limiter}, nil
}

// Fetch retrieves the named files under the prefix in parallel.
//
// Description:
//
//	Reads up to Concurrency objects at a time, rate-limited by
//	ReadsPerSecond. Each file's failure is recorded in its FileResult;
//	the batch only errors as a whole when the context is cancelled.
//	Results are returned in the order names were given regardless of
//	completion order.
func (f *GCSFetcher) Fetch(ctx context.Context, prefix string, names []string) ([]FileResult, error) {
	results := make([]FileResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.cfg.Concurrency)

	for i, name := range names {
		g.Go(func() error {
			if err := f.limiter.Wait(gctx); err != nil {
				return err
			}
			content, err := f.readObject(gctx, path.Join(prefix, name))
			results[i] = FileResult{Path: name, Content: content, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch documentation batch: %w", err)
	}
	return results, nil
}

// readObject reads one object's full content, capped at MaxObjectBytes.
func (f *GCSFetcher) readObject(ctx context.Context, objectPath string) ([]byte, error) {
	reader, err := f.client.Bucket(f.cfg.Bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open gs://%s/%s: %w", f.cfg.Bucket, objectPath, err)
	}
	defer reader.Close()

	content, err := io.ReadAll(io.LimitReader(reader, f.cfg.MaxObjectBytes))
	if err != nil {
		return nil, fmt.Errorf("read gs://%s/%s: %w", f.cfg.Bucket, objectPath, err)
	}
	return content, nil
}

// Close releases the underlying GCS client.
func (f *GCSFetcher) Close() error {
	return f.client.Close()
}

// Ensure GCSFetcher implements Fetcher.
var _ Fetcher = (*GCSFetcher)(nil)
