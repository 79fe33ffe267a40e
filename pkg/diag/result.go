// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package diag

import (
	"sort"
	"time"
)

// FailedFile records a file that could not be analyzed, along with why.
type FailedFile struct {
	Path   string
	Reason string
}

// Result is the owned, ordered outcome of one or more analysis calls.
type Result struct {
	Issues        []Issue
	FilesAnalyzed uint
	AnalysisTime  time.Duration
	FailedFiles   []FailedFile
	// RunID correlates this Result with log lines and CI annotations
	// emitted during the same analysis run (see pkg/analyzer).
	RunID string
	// Categories holds the Testing Analyzer's per-category test counts,
	// queried via GetCategoryBreakdown (spec §6). Nil when tests were not
	// analyzed (e.g. a memory-only call).
	Categories CategoryBreakdown
}

// GetCategoryBreakdown returns a fresh copy of r's category counts, owned by
// the caller, per spec §4.5/§6.
func (r Result) GetCategoryBreakdown() CategoryBreakdown {
	out := make(CategoryBreakdown, len(r.Categories))
	for k, v := range r.Categories {
		out[k] = v
	}

	return out
}

// Sort orders issues by (file_path, line, column, severity_rank, kind), the
// stable order spec §4.6 specifies (§8's invariant 3 states the same
// ordering dropping severity as a don't-care tiebreak; including it here is
// a strict refinement, not a contradiction). It also orders FailedFiles by
// path so that aggregation is deterministic.
func (r *Result) Sort() {
	sort.SliceStable(r.Issues, func(i, j int) bool {
		a, b := r.Issues[i], r.Issues[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}

		if a.Line != b.Line {
			return a.Line < b.Line
		}

		if a.Column != b.Column {
			return a.Column < b.Column
		}

		if a.Severity.rank() != b.Severity.rank() {
			return a.Severity.rank() < b.Severity.rank()
		}

		return a.Kind.rank() < b.Kind.rank()
	})

	sort.SliceStable(r.FailedFiles, func(i, j int) bool {
		return r.FailedFiles[i].Path < r.FailedFiles[j].Path
	})
}

// Merge folds another per-file Result into r, preserving ordering (a
// subsequent call to Sort is required to restore the global order; Merge
// itself only concatenates, matching spec §4.6's "aggregation" step which is
// immediately followed by the single sort pass).
func (r *Result) Merge(other Result) {
	r.Issues = append(r.Issues, other.Issues...)
	r.FilesAnalyzed += other.FilesAnalyzed
	r.AnalysisTime += other.AnalysisTime
	r.FailedFiles = append(r.FailedFiles, other.FailedFiles...)

	if len(other.Categories) > 0 {
		if r.Categories == nil {
			r.Categories = make(CategoryBreakdown)
		}

		for k, v := range other.Categories {
			r.Categories[k] += v
		}
	}
}

// CategoryBreakdown is returned by the Testing Analyzer's category query; a
// plain map is safe to hand to the caller because Result and everything it
// contains is freshly constructed per call (see package doc).
type CategoryBreakdown map[string]uint

// SeverityRank exposes Severity's internal ordering for formatters that need
// to sort by severity without reaching into package-private state.
func SeverityRank(s Severity) int { return s.rank() }
