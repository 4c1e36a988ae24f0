// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command driftwatch detects documentation drift: it compares a
// machine-extracted code symbol inventory against the symbols referenced
// in generated documentation and reports what is undocumented, obsolete,
// or structurally drifted.
//
// # Usage
//
//	# One-shot analysis over local files
//	driftwatch analyze --impact impact_report.json \
//	    --snapshot doc_snapshot.json --docs-dir ./generated-docs
//
//	# Long-running HTTP service backed by GCS and an embedded store
//	driftwatch serve --config config.yaml
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "driftwatch",
	Short: "Documentation drift detection for generated docs",
	Long: `driftwatch compares the code symbol inventory from an impact report
against the symbols referenced in generated documentation and emits a
severity-classified drift report.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		log.SetFlags(0)
		log.Printf("driftwatch: %v", err)
		os.Exit(1)
	}
}
