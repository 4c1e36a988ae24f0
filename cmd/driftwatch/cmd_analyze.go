// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/driftwatch/pkg/logging"
	"github.com/AleutianAI/driftwatch/services/driftwatch/pipeline"
	"github.com/AleutianAI/driftwatch/services/driftwatch/storage"
)

// newAnalyzeCmd builds the one-shot local analysis command.
//
// The snapshot's docs_bucket_path is resolved under --docs-dir, so a
// snapshot produced for bucket prefix "docs/svc/abc" reads files from
// {docs-dir}/docs/svc/abc/.
func newAnalyzeCmd() *cobra.Command {
	var (
		impactPath   string
		snapshotPath string
		docsDir      string
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run one drift analysis over local artifact files",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelWarn
			if verbose {
				level = logging.LevelDebug
			}
			logger := logging.New(logging.Config{Level: level, Service: "driftwatch"})
			defer logger.Close()

			impactJSON, err := os.ReadFile(impactPath)
			if err != nil {
				return fmt.Errorf("read impact report: %w", err)
			}
			snapshotJSON, err := os.ReadFile(snapshotPath)
			if err != nil {
				return fmt.Errorf("read doc snapshot: %w", err)
			}

			orch := pipeline.New(storage.NewLocalFetcher(docsDir), pipeline.Config{Logger: logger})
			result, err := orch.Run(cmd.Context(), impactJSON, snapshotJSON)
			if err != nil {
				return err
			}

			for _, warning := range result.Warnings {
				logger.Warn("run warning", "file", warning.File, "message", warning.Message)
			}

			encoded, err := json.MarshalIndent(result.Report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVar(&impactPath, "impact", "", "Path to impact_report.json (required)")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Path to doc_snapshot.json (required)")
	cmd.Flags().StringVar(&docsDir, "docs-dir", ".", "Root directory the snapshot's bucket path resolves under")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	_ = cmd.MarkFlagRequired("impact")
	_ = cmd.MarkFlagRequired("snapshot")

	return cmd
}
