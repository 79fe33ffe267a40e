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
package analyzer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openzig/ziglint/pkg/analyzer"
	"github.com/openzig/ziglint/pkg/config"
	"github.com/openzig/ziglint/pkg/diag"
)

const missingReleaseSrc = `
pub fn scratch(a: std.mem.Allocator) void {
    var buf = try a.alloc(u8, 16);
    std.debug.print("{d}\n", .{buf.len});
}
`

const wellFormedTestSrc = `
test "unit: loader: rejects empty input" {
    try std.testing.expect(true);
}
`

func newAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()

	a, err := analyzer.New(config.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return a
}

func TestAnalyzeSourceFindsMissingScopedRelease(t *testing.T) {
	a := newAnalyzer(t)

	result := a.AnalyzeSource([]byte(missingReleaseSrc), "loader.zig")

	found := false
	for _, iss := range result.Issues {
		if iss.Kind == diag.MissingScopedRelease {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected a missing_scoped_release issue, got %+v", result.Issues)
	}

	if result.FilesAnalyzed != 1 {
		t.Fatalf("expected FilesAnalyzed=1, got %d", result.FilesAnalyzed)
	}

	if result.RunID == "" {
		t.Fatalf("expected a non-empty RunID")
	}
}

func TestAnalyzeTestsAcceptsWellFormedName(t *testing.T) {
	a := newAnalyzer(t)

	result := a.AnalyzeTests([]byte(wellFormedTestSrc), "loader_test.zig")

	for _, iss := range result.Issues {
		if iss.Kind == diag.InvalidTestNaming {
			t.Fatalf("did not expect a naming violation for a well-formed name, got %+v", iss)
		}
	}

	breakdown := result.GetCategoryBreakdown()
	if breakdown["unit"] != 1 {
		t.Fatalf("expected one unit-category test, got %+v", breakdown)
	}
}

func TestAnalyzeMemorySkipsTestingChecks(t *testing.T) {
	a := newAnalyzer(t)

	result := a.AnalyzeMemory([]byte(missingReleaseSrc), "loader.zig")

	for _, iss := range result.Issues {
		if iss.Kind == diag.InvalidTestNaming || iss.Kind == diag.MissingTestsInFile {
			t.Fatalf("AnalyzeMemory must not run testing checks, got %+v", iss)
		}
	}
}

func TestAnalyzeFileWrapsNotFound(t *testing.T) {
	a := newAnalyzer(t)

	_, err := a.AnalyzeFile(filepath.Join(t.TempDir(), "does_not_exist.zig"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}

	var fileErr *analyzer.FileIOError
	if !asFileIOError(err, &fileErr) {
		t.Fatalf("expected a *FileIOError, got %T: %v", err, err)
	}

	if fileErr.Kind != analyzer.FileIONotFound {
		t.Fatalf("expected FileIONotFound, got %v", fileErr.Kind)
	}
}

func TestAnalyzeFileReadsRealFile(t *testing.T) {
	a := newAnalyzer(t)

	path := filepath.Join(t.TempDir(), "loader.zig")
	if err := os.WriteFile(path, []byte(missingReleaseSrc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	result, err := a.AnalyzeFile(path)
	if err != nil {
		t.Fatalf("AnalyzeFile: %v", err)
	}

	if len(result.Issues) == 0 {
		t.Fatalf("expected at least one issue")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	raw := config.Default()
	raw.Options.MaxIssues = -1

	if _, err := analyzer.New(raw); err == nil {
		t.Fatalf("expected New to reject a negative max_issues")
	}
}

func asFileIOError(err error, target **analyzer.FileIOError) bool {
	fileErr, ok := err.(*analyzer.FileIOError)
	if !ok {
		return false
	}

	*target = fileErr

	return true
}
