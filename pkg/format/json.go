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
package format

import (
	"encoding/json"
	"io"

	"github.com/openzig/ziglint/pkg/diag"
)

// jsonIssue mirrors diag.Issue's wire shape; stdlib encoding/json already
// escapes control characters within Message per spec §8's round-trip
// invariant, so no bespoke escaping is needed here (see DESIGN.md for why a
// second JSON codec from the pack was not wired in for this).
type jsonIssue struct {
	FilePath   string `json:"file_path"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	Severity   string `json:"severity"`
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

type jsonFailedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

type jsonResult struct {
	Issues        []jsonIssue      `json:"issues"`
	FilesAnalyzed uint             `json:"files_analyzed"`
	AnalysisTimeMs int64           `json:"analysis_time_ms"`
	FailedFiles   []jsonFailedFile `json:"failed_files,omitempty"`
	RunID         string           `json:"run_id"`
	Categories    map[string]uint  `json:"categories,omitempty"`
}

// JSON writes result to w as a single JSON object, preserving Result.Sort's
// ordering.
func JSON(w io.Writer, result diag.Result) error {
	out := jsonResult{
		FilesAnalyzed:  result.FilesAnalyzed,
		AnalysisTimeMs: result.AnalysisTime.Milliseconds(),
		RunID:          result.RunID,
		Categories:     result.Categories,
	}

	for _, iss := range result.Issues {
		out.Issues = append(out.Issues, jsonIssue{
			FilePath:   iss.FilePath,
			Line:       iss.Line,
			Column:     iss.Column,
			Severity:   iss.Severity.String(),
			Kind:       iss.Kind.String(),
			Message:    iss.Message,
			Suggestion: iss.Suggestion,
		})
	}

	for _, ff := range result.FailedFiles {
		out.FailedFiles = append(out.FailedFiles, jsonFailedFile{Path: ff.Path, Reason: ff.Reason})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
