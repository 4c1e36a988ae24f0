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
	"fmt"
	"sort"
	"strings"

	"github.com/AleutianAI/driftwatch/services/driftwatch/input"
)

// IndexImpactReport flattens an impact report into a code symbol set.
//
// Description:
//
//	Walks the report's sections and produces one deduplicated CodeSymbol
//	per normalized key and category:
//
//	  - api_contract.endpoints -> API symbols. The producer's
//	    normalized_key is used verbatim when present; otherwise the key is
//	    synthesized as "{METHOD} {path}" with the method upper-cased and
//	    the path taken verbatim.
//	  - data_models -> schema symbols: the model name, plus one
//	    "{Model}.{field}" symbol per declared field.
//	  - files[].symbols (legacy schema) -> generic symbols, promoted to
//	    API when the containing file's impact tags mark it API-affecting.
//
//	When both the current and legacy schemas are present the current one
//	wins and the legacy section is ignored entirely.
//
// Inputs:
//
//	report - A validated impact report. Must not be nil.
//
// Outputs:
//
//	*CodeSymbolSet - The flattened inventory. Never nil; empty when the
//	report carries no recognizable sections.
func IndexImpactReport(report *input.ImpactReport) *CodeSymbolSet {
	set := NewCodeSymbolSet()
	if report == nil {
		return set
	}

	if report.HasCurrentSchema() {
		indexAPIContract(set, report.APIContract)
		indexDataModels(set, report.DataModels)
		return set
	}

	indexLegacyFiles(set, report.Files)
	return set
}

func indexAPIContract(set *CodeSymbolSet, contract *input.APIContract) {
	if contract == nil {
		return
	}
	for _, ep := range contract.Endpoints {
		key := ep.NormalizedKey
		if key == "" {
			if ep.Method == "" && ep.Path == "" {
				continue
			}
			key = fmt.Sprintf("%s %s", strings.ToUpper(ep.Method), ep.Path)
		}
		set.Add(CodeSymbol{Key: key, Category: CategoryAPI})
	}
}

func indexDataModels(set *CodeSymbolSet, models map[string]input.DataModel) {
	// Map iteration order is random; sort model names so Add order (and
	// first-wins dedup, should keys collide) is reproducible.
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		set.Add(CodeSymbol{Key: name, Category: CategorySchema})
		for _, field := range models[name].Fields {
			if field == "" {
				continue
			}
			set.Add(CodeSymbol{Key: name + "." + field, Category: CategorySchema})
		}
	}
}

func indexLegacyFiles(set *CodeSymbolSet, files []input.FileEntry) {
	for _, file := range files {
		category := CategoryGeneric
		if hasAPIImpact(file.Impacts) {
			category = CategoryAPI
		}
		for _, sym := range file.Symbols {
			set.Add(CodeSymbol{Key: sym, Category: category})
		}
	}
}

// hasAPIImpact reports whether any impact tag marks the file API-affecting.
func hasAPIImpact(impacts []string) bool {
	for _, tag := range impacts {
		if strings.Contains(strings.ToLower(tag), "api") {
			return true
		}
	}
	return false
}
