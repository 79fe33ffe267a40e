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
package pattern_test

import (
	"testing"

	"github.com/openzig/ziglint/pkg/pattern"
)

func TestBuildAllocatorMatcherDefaultsOnly(t *testing.T) {
	m, warnings, err := pattern.BuildAllocatorMatcher(nil, true, nil)
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	name, ok := m.Classify("std.heap.page_allocator")
	if !ok || name != "page_allocator" {
		t.Errorf("Classify(page_allocator expr) = %q, %v, want page_allocator, true", name, ok)
	}

	if _, ok := m.Classify("some_unrelated_identifier"); ok {
		t.Errorf("expected no match for an unrelated identifier")
	}
}

func TestBuildAllocatorMatcherUserOverridesDefault(t *testing.T) {
	user := []pattern.Allocator{{Name: "page_allocator", PatternText: "my_page_alloc", CaseSensitive: true}}

	m, warnings, err := pattern.BuildAllocatorMatcher(user, true, nil)
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 pattern_validation_warning for the name conflict, got %d: %+v", len(warnings), warnings)
	}

	// The user's pattern must win: the built-in "page_allocator" substring
	// text no longer classifies anything, only the user's replacement text.
	if _, ok := m.Classify("std.heap.page_allocator"); ok {
		t.Errorf("expected default page_allocator pattern text to have been shadowed by the user's")
	}

	if name, ok := m.Classify("my_page_alloc"); !ok || name != "page_allocator" {
		t.Errorf("Classify(my_page_alloc) = %q, %v, want page_allocator, true", name, ok)
	}
}

func TestBuildAllocatorMatcherDisabledDefault(t *testing.T) {
	m, _, err := pattern.BuildAllocatorMatcher(nil, true, []string{"page_allocator"})
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	if _, ok := m.Classify("std.heap.page_allocator"); ok {
		t.Errorf("expected page_allocator pattern to be disabled")
	}

	if _, ok := m.Classify("std.heap.GeneralPurposeAllocator(.{}){}"); !ok {
		t.Errorf("expected gpa pattern to remain active")
	}
}

func TestBuildAllocatorMatcherRejectsDuplicateNames(t *testing.T) {
	user := []pattern.Allocator{
		{Name: "dup", PatternText: "a"},
		{Name: "dup", PatternText: "b"},
	}

	if _, _, err := pattern.BuildAllocatorMatcher(user, false, nil); err == nil {
		t.Fatalf("expected an error for duplicate pattern names")
	}
}

func TestBuildAllocatorMatcherRejectsEmptyFields(t *testing.T) {
	if _, _, err := pattern.BuildAllocatorMatcher([]pattern.Allocator{{Name: "", PatternText: "x"}}, false, nil); err == nil {
		t.Fatalf("expected an error for empty name")
	}

	if _, _, err := pattern.BuildAllocatorMatcher([]pattern.Allocator{{Name: "x", PatternText: ""}}, false, nil); err == nil {
		t.Fatalf("expected an error for empty pattern text")
	}
}

func TestBuildAllocatorMatcherSingleCharWarns(t *testing.T) {
	user := []pattern.Allocator{{Name: "short", PatternText: "a"}}

	_, warnings, err := pattern.BuildAllocatorMatcher(user, false, nil)
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	if len(warnings) != 1 {
		t.Fatalf("expected 1 length-1 warning, got %d: %+v", len(warnings), warnings)
	}
}

func TestBuildAllocatorMatcherRegexCompileFailure(t *testing.T) {
	user := []pattern.Allocator{{Name: "bad", PatternText: "(unterminated", IsRegex: true}}

	if _, _, err := pattern.BuildAllocatorMatcher(user, false, nil); err == nil {
		t.Fatalf("expected an error for an invalid regex pattern")
	}
}

func TestBuildAllocatorMatcherRegexMatching(t *testing.T) {
	user := []pattern.Allocator{{Name: "custom", PatternText: `custom_\w+_allocator`, IsRegex: true}}

	m, _, err := pattern.BuildAllocatorMatcher(user, false, nil)
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	if name, ok := m.Classify("custom_pool_allocator"); !ok || name != "custom" {
		t.Errorf("Classify = %q, %v, want custom, true", name, ok)
	}
}

func TestBuildAllocatorMatcherCaseInsensitive(t *testing.T) {
	user := []pattern.Allocator{{Name: "ci", PatternText: "MyAlloc", CaseSensitive: false}}

	m, _, err := pattern.BuildAllocatorMatcher(user, false, nil)
	if err != nil {
		t.Fatalf("BuildAllocatorMatcher: %v", err)
	}

	if _, ok := m.Classify("myalloc_instance"); !ok {
		t.Errorf("expected a case-insensitive match")
	}
}

func TestBuildOwnershipMatcherSplitsByMatchKind(t *testing.T) {
	m, _, err := pattern.BuildOwnershipMatcher(nil, true)
	if err != nil {
		t.Fatalf("BuildOwnershipMatcher: %v", err)
	}

	if name, ok := m.ClassifyFunctionName("createBuffer"); !ok || name != "factory_create" {
		t.Errorf("ClassifyFunctionName(createBuffer) = %q, %v, want factory_create, true", name, ok)
	}

	// A return-type-only pattern like "[]u8" must never match against a
	// function name, even though the text could technically appear there.
	if _, ok := m.ClassifyFunctionName("[]u8"); ok {
		t.Errorf("expected return-type-only pattern to not match a function name")
	}

	if name, ok := m.ClassifyReturnType("[]u8"); !ok || name != "owned_slice_return" {
		t.Errorf("ClassifyReturnType([]u8) = %q, %v, want owned_slice_return, true", name, ok)
	}
}

func TestOwnershipMatcherNilReceiverIsSafe(t *testing.T) {
	var m *pattern.OwnershipMatcher

	if _, ok := m.ClassifyFunctionName("create"); ok {
		t.Errorf("expected nil matcher to report no match")
	}

	if _, ok := m.ClassifyReturnType("[]u8"); ok {
		t.Errorf("expected nil matcher to report no match")
	}
}
