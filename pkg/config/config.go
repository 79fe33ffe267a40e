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

// Package config assembles the four configuration groups spec §4.7 names
// (memory, testing, patterns, options), merges caller overrides with
// defaults, and validates the merged result exactly once at construction.
package config

import (
	"fmt"

	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/memory"
	"github.com/openzig/ziglint/pkg/pattern"
	ztesting "github.com/openzig/ziglint/pkg/testing"
)

func severityFor(failOnMissingRelease bool) diag.Severity {
	if failOnMissingRelease {
		return diag.SeverityError
	}

	return diag.SeverityWarning
}

// Memory mirrors memory.Config's fields in their raw, pre-pattern-compiled
// form, the shape a caller (or a YAML file) supplies them in.
type Memory struct {
	CheckScopedRelease         bool     `yaml:"check_scoped_release"`
	CheckArenaUsage            bool     `yaml:"check_arena_usage"`
	CheckAllocatorAllowlist    bool     `yaml:"check_allocator_allowlist"`
	AllowedAllocators          []string `yaml:"allowed_allocators"`
	IsLibraryFile              bool     `yaml:"is_library_file"`
	EmitOwnershipTransferHints bool     `yaml:"emit_ownership_transfer_hints"`
	FailOnMissingRelease       bool     `yaml:"fail_on_missing_release"`

	// MaxDepth bounds the Scope Tracker's nesting depth (spec §4.3's
	// "configurable max_depth"); zero means scope.DefaultMaxDepth. Lives
	// here rather than in a dedicated scope-tracker group because every
	// caller of this library reaches the tracker only through the Memory
	// or Testing Analyzer, never directly.
	MaxDepth uint32 `yaml:"max_depth"`
	// ParameterAllocatorTypeNeedles overrides the case-insensitive
	// substrings of a parameter's declared type the Scope Tracker treats as
	// marking an allocator parameter (spec §4.3); empty means
	// scope.DefaultParameterAllocatorTypeNeedles().
	ParameterAllocatorTypeNeedles []string `yaml:"parameter_allocator_type_needles"`
}

// Testing mirrors ztesting.Config.
type Testing struct {
	AllowedCategories       []string `yaml:"allowed_categories"`
	CheckMissingTestsInFile bool     `yaml:"check_missing_tests_in_file"`
}

// Patterns carries both pattern families plus the defaults toggles spec
// §4.2/§4.4 describe. Consumed by the core to build the compiled matchers;
// `Include`/`Exclude` are consumed only by the external file-discovery
// collaborator (pkg/discover), per spec §4.7.
type Patterns struct {
	Allocator            []pattern.Allocator `yaml:"allocator"`
	Ownership            []pattern.Ownership `yaml:"ownership"`
	UseDefaultAllocator  bool                `yaml:"use_default_allocator_patterns"`
	UseDefaultOwnership  bool                `yaml:"use_default_ownership_patterns"`
	DisabledDefaultNames []string            `yaml:"disabled_default_patterns"`
	Include              []string            `yaml:"include"`
	Exclude              []string            `yaml:"exclude"`
}

// Options holds the cross-cutting knobs spec §4.7 names.
type Options struct {
	MaxIssues       int  `yaml:"max_issues"`
	Verbose         bool `yaml:"verbose"`
	FailOnWarnings  bool `yaml:"fail_on_warnings"`
	ContinueOnError bool `yaml:"continue_on_error"`
}

// Raw is the caller- or file-supplied configuration, before validation and
// pattern compilation. Unknown YAML keys are rejected by the decoder
// (see Load in yaml.go), satisfying spec §4.7's "unknown options are
// rejected" rule.
type Raw struct {
	Memory   Memory   `yaml:"memory"`
	Testing  Testing  `yaml:"testing"`
	Patterns Patterns `yaml:"patterns"`
	Options  Options  `yaml:"options"`
}

// Default returns the Raw configuration matching each analyzer's own
// defaults, so a caller can start from it and override only what it needs.
func Default() Raw {
	return Raw{
		Memory: Memory{
			CheckScopedRelease:      true,
			CheckArenaUsage:         true,
			CheckAllocatorAllowlist: false,
		},
		Testing: Testing{
			AllowedCategories:       []string{"unit", "integration", "regression", "e2e"},
			CheckMissingTestsInFile: true,
		},
		Patterns: Patterns{
			UseDefaultAllocator: true,
			UseDefaultOwnership: true,
		},
		Options: Options{
			MaxIssues:       0,
			ContinueOnError: true,
		},
	}
}

// Config is the validated, immutable result of Build: compiled pattern
// matchers plus the analyzer-facing config structs, ready to hand to
// pkg/analyzer. Once built, a Config is never mutated and may be shared by
// immutable reference across goroutines (spec §5).
type Config struct {
	Memory   memory.Config
	Testing  ztesting.Config
	Options  Options
	Patterns Patterns

	// ScopeMaxDepth and ScopeParameterAllocatorTypeNeedles are the
	// Memory/Testing-Analyzer-independent Scope Tracker knobs (spec §4.3),
	// threaded through from raw.Memory so pkg/analyzer can build a
	// scope.Config that honours caller overrides instead of silently
	// defaulting every call.
	ScopeMaxDepth                      uint32
	ScopeParameterAllocatorTypeNeedles []string

	// Warnings are pattern_validation_warning issues surfaced at build time
	// (not fatal: spec §4.2's non-fatal overlap rules).
	Warnings []Issue
}

// Issue is a minimal, config-package-local record of a build-time warning
// message (the caller — pkg/analyzer — converts these into diag.Issue
// values, attaching the FilePath that is only known per-call).
type Issue struct {
	Message string
}

// Build validates raw and compiles its pattern groups, returning a
// configuration_error (a plain Go error; the caller surfaces this as
// diag.ConfigurationError) on any validation failure, per spec §4.7.
func Build(raw Raw) (*Config, error) {
	if raw.Options.MaxIssues < 0 {
		return nil, fmt.Errorf("options.max_issues must not be negative")
	}

	allocMatcher, allocWarnings, err := pattern.BuildAllocatorMatcher(
		raw.Patterns.Allocator, raw.Patterns.UseDefaultAllocator, raw.Patterns.DisabledDefaultNames,
	)
	if err != nil {
		return nil, fmt.Errorf("patterns.allocator: %w", err)
	}

	ownershipMatcher, ownershipWarnings, err := pattern.BuildOwnershipMatcher(
		raw.Patterns.Ownership, raw.Patterns.UseDefaultOwnership,
	)
	if err != nil {
		return nil, fmt.Errorf("patterns.ownership: %w", err)
	}

	memCfg := memory.Config{
		CheckScopedRelease:         raw.Memory.CheckScopedRelease,
		CheckArenaUsage:            raw.Memory.CheckArenaUsage,
		CheckAllocatorAllowlist:    raw.Memory.CheckAllocatorAllowlist,
		AllowedAllocators:          toSet(raw.Memory.AllowedAllocators),
		OwnershipMatcher:           ownershipMatcher,
		IsLibraryFile:              raw.Memory.IsLibraryFile,
		EmitOwnershipTransferHints: raw.Memory.EmitOwnershipTransferHints,
		MissingReleaseSeverity:     severityFor(raw.Memory.FailOnMissingRelease),
	}

	testCfg := ztesting.Config{
		AllowedCategories:       toSet(raw.Testing.AllowedCategories),
		CheckMissingTestsInFile: raw.Testing.CheckMissingTestsInFile,
	}

	var warnings []Issue
	for _, w := range allocWarnings {
		warnings = append(warnings, Issue{Message: w.Message})
	}

	for _, w := range ownershipWarnings {
		warnings = append(warnings, Issue{Message: w.Message})
	}

	return &Config{
		Memory:                             memCfg,
		Testing:                            testCfg,
		Options:                            raw.Options,
		Patterns:                           raw.Patterns,
		Warnings:                           warnings,
		ScopeMaxDepth:                      raw.Memory.MaxDepth,
		ScopeParameterAllocatorTypeNeedles: raw.Memory.ParameterAllocatorTypeNeedles,
	}, nil
}

// AllocatorMatcher rebuilds (cheaply) the compiled allocator Matcher the
// Scope Tracker needs; exposed separately from Config.Memory because
// scope.Config is the tracker's own input shape, distinct from
// memory.Config.
func (c *Config) AllocatorMatcher() (*pattern.Matcher, error) {
	m, _, err := pattern.BuildAllocatorMatcher(
		c.Patterns.Allocator, c.Patterns.UseDefaultAllocator, c.Patterns.DisabledDefaultNames,
	)

	return m, err
}

func toSet(names []string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}

	return s
}
