// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

// State names one phase of a drift analysis run.
type State string

const (
	StateLoadingInputs  State = "LOADING_INPUTS"
	StateIndexingCode   State = "INDEXING_CODE"
	StateFetchingDocs   State = "FETCHING_DOCS"
	StateIndexingDocs   State = "INDEXING_DOCS"
	StateComparing      State = "COMPARING"
	StateClassifying    State = "CLASSIFYING"
	StateBuildingReport State = "BUILDING_REPORT"
	StateDone           State = "DONE"
)
