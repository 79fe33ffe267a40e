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
package testing_test

import (
	"testing"

	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/pattern"
	"github.com/openzig/ziglint/pkg/scope"
	"github.com/openzig/ziglint/pkg/source"
	ztesting "github.com/openzig/ziglint/pkg/testing"
)

func buildTree(t *testing.T, src string) (*source.Context, *scope.Tree) {
	t.Helper()

	matcher, _, err := pattern.BuildAllocatorMatcher(nil, true, nil)
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	f := source.NewFile("test.zig", []byte(src))
	ctx := source.NewContext(f)
	tree, _ := scope.Build(ctx, scope.Config{AllocatorMatcher: matcher})

	return ctx, tree
}

func countKind(issues []diag.Issue, kind diag.Kind) int {
	n := 0

	for _, iss := range issues {
		if iss.Kind == kind {
			n++
		}
	}

	return n
}

func TestTestNamingScenario(t *testing.T) {
	src := `
test "UnitFoo" {
    const x = 1;
}
test "unit: Parser: empty input" {
    const y = 2;
}
`
	ctx, tree := buildTree(t, src)
	cfg := ztesting.DefaultConfig()
	issues := ztesting.Analyze(ctx, tree, cfg)

	if n := countKind(issues, diag.MissingTestCategory) + countKind(issues, diag.InvalidTestNaming); n != 1 {
		t.Fatalf("expected exactly one naming violation for the first test, got %d: %+v", n, issues)
	}
}

func TestCategoryOutsideAllowed(t *testing.T) {
	src := `
test "fuzz: Parser: random bytes" {
    const x = 1;
}
`
	ctx, tree := buildTree(t, src)
	cfg := ztesting.DefaultConfig()
	issues := ztesting.Analyze(ctx, tree, cfg)

	if n := countKind(issues, diag.TestOutsideAllowedCategories); n != 1 {
		t.Fatalf("expected exactly one test_outside_allowed_categories, got %d: %+v", n, issues)
	}
}

func TestMissingTestsInFileScansWholeFile(t *testing.T) {
	src := `
pub fn doWork() void {}
`
	ctx, tree := buildTree(t, src)
	cfg := ztesting.DefaultConfig()
	issues := ztesting.Analyze(ctx, tree, cfg)

	if n := countKind(issues, diag.MissingTestsInFile); n != 1 {
		t.Fatalf("expected exactly one missing_tests_in_file, got %d: %+v", n, issues)
	}
}

func TestMissingTestsInFileSuppressedByTrailingTest(t *testing.T) {
	src := `
pub fn doWork() void {}

test "unit: doWork: succeeds" {
    const x = 1;
}
`
	ctx, tree := buildTree(t, src)
	cfg := ztesting.DefaultConfig()
	issues := ztesting.Analyze(ctx, tree, cfg)

	if n := countKind(issues, diag.MissingTestsInFile); n != 0 {
		t.Fatalf("expected zero missing_tests_in_file when a trailing test exists, got %d: %+v", n, issues)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	src := `
test "unit: a: one" {
    const x = 1;
}
test "unit: b: two" {
    const y = 2;
}
test "integration: c: three" {
    const z = 3;
}
`
	_, tree := buildTree(t, src)
	breakdown := ztesting.CategoryBreakdown(tree)

	if breakdown["unit"] != 2 {
		t.Fatalf("expected 2 unit tests, got %d", breakdown["unit"])
	}

	if breakdown["integration"] != 1 {
		t.Fatalf("expected 1 integration test, got %d", breakdown["integration"])
	}
}
