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
package config_test

import (
	"testing"

	"github.com/openzig/ziglint/pkg/config"
	"github.com/openzig/ziglint/pkg/pattern"
)

func TestBuildDefault(t *testing.T) {
	cfg, err := config.Build(config.Default())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !cfg.Memory.CheckScopedRelease {
		t.Fatalf("expected CheckScopedRelease to default on")
	}

	if !cfg.Testing.AllowedCategories["unit"] {
		t.Fatalf("expected 'unit' to be an allowed category by default")
	}
}

func TestBuildRejectsNegativeMaxIssues(t *testing.T) {
	raw := config.Default()
	raw.Options.MaxIssues = -1

	if _, err := config.Build(raw); err == nil {
		t.Fatalf("expected an error for negative max_issues")
	}
}

func TestBuildRejectsInvalidPattern(t *testing.T) {
	raw := config.Default()
	raw.Patterns.Allocator = []pattern.Allocator{{Name: "", PatternText: "x"}}

	if _, err := config.Build(raw); err == nil {
		t.Fatalf("expected an error for an allocator pattern with an empty name")
	}
}

func TestBuildThreadsScopeTrackerOverrides(t *testing.T) {
	raw := config.Default()
	raw.Memory.MaxDepth = 8
	raw.Memory.ParameterAllocatorTypeNeedles = []string{"Arena"}

	cfg, err := config.Build(raw)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if cfg.ScopeMaxDepth != 8 {
		t.Fatalf("ScopeMaxDepth = %d, want 8", cfg.ScopeMaxDepth)
	}

	if len(cfg.ScopeParameterAllocatorTypeNeedles) != 1 || cfg.ScopeParameterAllocatorTypeNeedles[0] != "Arena" {
		t.Fatalf("ScopeParameterAllocatorTypeNeedles = %+v, want [\"Arena\"]", cfg.ScopeParameterAllocatorTypeNeedles)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	doc := []byte("options:\n  typo_field: true\n")

	if _, err := config.Load(doc); err == nil {
		t.Fatalf("expected an error for an unknown configuration key")
	}
}

func TestLoadAppliesOverridesOntoDefaults(t *testing.T) {
	doc := []byte("testing:\n  allowed_categories: [\"unit\"]\n")

	raw, err := config.Load(doc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(raw.Testing.AllowedCategories) != 1 || raw.Testing.AllowedCategories[0] != "unit" {
		t.Fatalf("expected override to apply, got %+v", raw.Testing.AllowedCategories)
	}

	if !raw.Patterns.UseDefaultAllocator {
		t.Fatalf("expected untouched defaults to survive a partial override")
	}
}
