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
package memory_test

import (
	"testing"

	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/memory"
	"github.com/openzig/ziglint/pkg/pattern"
	"github.com/openzig/ziglint/pkg/scope"
	"github.com/openzig/ziglint/pkg/source"
)

func analyzeSrc(t *testing.T, src string, cfg memory.Config) []diag.Issue {
	t.Helper()

	allocMatcher, _, err := pattern.BuildAllocatorMatcher(nil, true, nil)
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	f := source.NewFile("test.zig", []byte(src))
	ctx := source.NewContext(f)
	tree, _ := scope.Build(ctx, scope.Config{AllocatorMatcher: allocMatcher})

	return memory.Analyze(ctx, tree, cfg)
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

func TestMissingScopedRelease(t *testing.T) {
	src := `
fn f() !void {
    const a = std.heap.page_allocator;
    const d = try a.alloc(u8, 100);
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.MissingScopedRelease); n != 1 {
		t.Fatalf("expected exactly one missing_scoped_release, got %d: %+v", n, issues)
	}
}

func TestTransferredOwnershipByReturn(t *testing.T) {
	src := `
fn make(a: Alloc) ![]u8 {
    const d = try a.alloc(u8, 100);
    return d;
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.MissingScopedRelease); n != 0 {
		t.Fatalf("expected zero missing_scoped_release, got %d: %+v", n, issues)
	}

	if n := countKind(issues, diag.OwnershipTransferHint); n != 0 {
		t.Fatalf("expected zero ownership_transfer_hint by default, got %d", n)
	}
}

func TestTransferredViaAggregateField(t *testing.T) {
	src := `
fn get(a: Alloc) !R {
    const d = try a.alloc(u8, 16);
    return R{ .buf = d };
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.MissingScopedRelease); n != 0 {
		t.Fatalf("expected zero missing_scoped_release, got %d: %+v", n, issues)
	}
}

func TestDisallowedAllocator(t *testing.T) {
	src := `
fn f() !void {
    const a = std.heap.page_allocator;
    const d = try a.alloc(u8, 100);
    defer d.free();
}
`
	cfg := memory.DefaultConfig()
	cfg.CheckAllocatorAllowlist = true
	cfg.AllowedAllocators = map[string]bool{"gpa": true}
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.DisallowedAllocator); n != 1 {
		t.Fatalf("expected exactly one disallowed_allocator, got %d: %+v", n, issues)
	}
}

func TestArenaDerivationSuppressesMissingRelease(t *testing.T) {
	src := `
fn g(parent: Alloc) !void {
    var arena = std.heap.ArenaAllocator.init(parent);
    defer arena.deinit();
    const a = arena.allocator();
    const d = try a.alloc(u8, 100);
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.MissingScopedRelease); n != 0 {
		t.Fatalf("expected zero missing_scoped_release at the d site, got %d: %+v", n, issues)
	}
}

func TestExplicitDeferSatisfiesRelease(t *testing.T) {
	src := `
fn f() !void {
    const a = std.heap.page_allocator;
    const d = try a.alloc(u8, 100);
    defer d.free();
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.MissingScopedRelease); n != 0 {
		t.Fatalf("expected zero missing_scoped_release, got %d: %+v", n, issues)
	}
}

func TestErrdeferWithUnconditionalReleaseSatisfiesRule(t *testing.T) {
	src := `
fn f() !void {
    const a = std.heap.page_allocator;
    const d = try a.alloc(u8, 100);
    errdefer d.free();
    doSomething(d);
    d.free();
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.MissingScopedRelease); n != 0 {
		t.Fatalf("expected zero missing_scoped_release, got %d: %+v", n, issues)
	}
}

func TestAllocatorMismatch(t *testing.T) {
	src := `
fn f() !void {
    const a = std.heap.page_allocator;
    const b = std.heap.page_allocator;
    const d = try a.alloc(u8, 100);
    defer b.free(d);
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.AllocatorMismatch); n != 1 {
		t.Fatalf("expected exactly one allocator_mismatch, got %d: %+v", n, issues)
	}

	if n := countKind(issues, diag.MissingScopedRelease); n != 0 {
		t.Fatalf("expected zero missing_scoped_release once a (mismatched) release is present, got %d", n)
	}
}

func TestAllocatorMismatchNotRaisedForSelfReleaseShape(t *testing.T) {
	src := `
fn f() !void {
    const a = std.heap.page_allocator;
    const d = try a.alloc(u8, 100);
    defer d.free();
}
`
	cfg := memory.DefaultConfig()
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.AllocatorMismatch); n != 0 {
		t.Fatalf("expected zero allocator_mismatch for a \"name.free()\" release shape, got %d: %+v", n, issues)
	}
}

func TestArenaInLibraryRule(t *testing.T) {
	src := `
fn g(parent: Alloc) !void {
    var arena = std.heap.ArenaAllocator.init(parent);
    defer arena.deinit();
}
`
	cfg := memory.DefaultConfig()
	cfg.IsLibraryFile = true
	issues := analyzeSrc(t, src, cfg)

	if n := countKind(issues, diag.ArenaInLibrary); n != 1 {
		t.Fatalf("expected exactly one arena_in_library, got %d: %+v", n, issues)
	}
}
