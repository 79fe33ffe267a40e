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
package memory

import (
	"fmt"
	"regexp"

	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/pattern"
	"github.com/openzig/ziglint/pkg/scope"
	"github.com/openzig/ziglint/pkg/source"
)

// allocationCallRe recognizes an allocation-verb call on an identifier,
// optionally wrapped in "try", as the text of a const/var initializer. The
// verb set mirrors spec §4.4's allocation-verb list.
var allocationCallRe = regexp.MustCompile(`(?:try\s+)?([A-Za-z_]\w*)\.(alloc|create|dupe|alloc_sentinel|realloc)\(`)

// Analyze walks every variable declaration in tree, looking for allocation
// sites (spec §4.4), and returns the diagnostics the configured rules
// produce. ctx must be the same Source Context tree was built from.
func Analyze(ctx *source.Context, tree *scope.Tree, cfg Config) []diag.Issue {
	var issues []diag.Issue

	for _, v := range tree.Variables() {
		if v.Kind == scope.Parameter || v.InitializerText == "" {
			continue
		}

		m := allocationCallRe.FindStringSubmatch(v.InitializerText)
		if m == nil {
			continue
		}

		origin, ok := tree.AllocatorOriginInScope(v.DeclaringScope, m[1]).Get()
		if !ok || !origin.IsKnown() {
			// Rule-evaluation uncertainty is never fatal: skip this site.
			continue
		}

		issues = append(issues, evaluateSite(ctx, tree, v, m[1], origin, cfg)...)
	}

	if cfg.CheckArenaUsage && cfg.IsLibraryFile {
		issues = append(issues, arenaInLibraryIssues(ctx, tree)...)
	}

	return issues
}

func evaluateSite(
	ctx *source.Context,
	tree *scope.Tree,
	v *scope.Variable,
	allocatorVar string,
	origin scope.AllocatorOrigin,
	cfg Config,
) []diag.Issue {
	var issues []diag.Issue

	transferred, kind := classifyOwnershipTransfer(ctx, tree, v.DeclaringScope, v.Name, cfg.OwnershipMatcher)

	switch {
	case transferred:
		if cfg.EmitOwnershipTransferHints {
			issues = append(issues, diag.Issue{
				FilePath: ctx.File().Path(), Line: v.DeclLine, Column: v.DeclColumn,
				Severity: diag.SeverityInfo, Kind: diag.OwnershipTransferHint,
				Message: fmt.Sprintf("allocation of %q is exempt from scoped-release: %s", v.Name, kind),
			})
		}
	case cfg.CheckScopedRelease:
		exempt := arenaExempt(ctx, tree, origin)

		if !exempt && !hasScopedRelease(ctx, tree, v.DeclaringScope, v.Name) {
			issues = append(issues, diag.Issue{
				FilePath: ctx.File().Path(), Line: v.DeclLine, Column: v.DeclColumn,
				Severity: cfg.MissingReleaseSeverity, Kind: diag.MissingScopedRelease,
				Message:    fmt.Sprintf("allocation assigned to %q has no scoped release in its declaring scope", v.Name),
				Suggestion: fmt.Sprintf("defer %s.free(%s);", allocatorVar, v.Name),
			})
		} else if !exempt {
			// A release is present; check that it names the same allocator
			// that produced the value (spec §3's allocator-mismatch kind).
			if releaser, ok := releaseAllocator(ctx, tree, v.DeclaringScope, v.Name); ok && releaser != allocatorVar {
				issues = append(issues, diag.Issue{
					FilePath: ctx.File().Path(), Line: v.DeclLine, Column: v.DeclColumn,
					Severity: diag.SeverityError, Kind: diag.AllocatorMismatch,
					Message: fmt.Sprintf(
						"%q was allocated via %q but released via %q", v.Name, allocatorVar, releaser,
					),
					Suggestion: fmt.Sprintf("defer %s.free(%s);", allocatorVar, v.Name),
				})
			}
		}
	}

	if cfg.CheckAllocatorAllowlist && origin.ClassifiedName != "" {
		allowed := cfg.AllowedAllocators[origin.ClassifiedName]
		if origin.Kind == scope.OriginParameter && cfg.AllowedAllocators[pattern.ParameterAllocatorName] {
			allowed = true
		}

		if !allowed {
			issues = append(issues, diag.Issue{
				FilePath: ctx.File().Path(), Line: v.DeclLine, Column: v.DeclColumn,
				Severity: diag.SeverityWarning, Kind: diag.DisallowedAllocator,
				Message: fmt.Sprintf("allocator %q used by %q is not in the configured allowlist", origin.ClassifiedName, v.Name),
			})
		}
	}

	return issues
}

func arenaInLibraryIssues(ctx *source.Context, tree *scope.Tree) []diag.Issue {
	var issues []diag.Issue

	for _, v := range tree.Variables() {
		if v.Origin.IsArena() {
			issues = append(issues, diag.Issue{
				FilePath: ctx.File().Path(), Line: v.DeclLine, Column: v.DeclColumn,
				Severity: diag.SeverityWarning, Kind: diag.ArenaInLibrary,
				Message: fmt.Sprintf("arena allocator %q declared in a file tagged as library", v.Name),
			})
		}
	}

	return issues
}
