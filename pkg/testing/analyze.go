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
package testing

import (
	"regexp"

	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/scope"
	"github.com/openzig/ziglint/pkg/source"
)

var publicFnRe = regexp.MustCompile(`\bpub\s+fn\b`)

// Analyze walks every test scope in tree and applies the naming and
// missing-tests-in-file checks.
func Analyze(ctx *source.Context, tree *scope.Tree, cfg Config) []diag.Issue {
	var issues []diag.Issue

	tests := tree.ScopesOfKind(scope.Test)

	for _, id := range tests {
		s := tree.Scope(id)

		name, ok := s.Name().Get()
		if !ok {
			name = ""
		}

		line, _ := s.Lines()
		issues = append(issues, checkName(ctx.File().Path(), line, name, cfg)...)
	}

	if cfg.CheckMissingTestsInFile && len(tests) == 0 {
		if hasPublicFunction(ctx) {
			issues = append(issues, diag.Issue{
				FilePath: ctx.File().Path(), Line: 1, Column: 1,
				Severity: diag.SeverityInfo, Kind: diag.MissingTestsInFile,
				Message: "file declares public functions but contains no test declarations",
			})
		}
	}

	return issues
}

func checkName(filePath string, line int, name string, cfg Config) []diag.Issue {
	parsed := parseName(name)

	switch {
	case !parsed.hasColon:
		return []diag.Issue{{
			FilePath: filePath, Line: line, Column: 1,
			Severity: diag.SeverityWarning, Kind: diag.MissingTestCategory,
			Message: "test name is missing a \"<category>: \" prefix",
		}}
	case !parsed.wellFormed:
		return []diag.Issue{{
			FilePath: filePath, Line: line, Column: 1,
			Severity: diag.SeverityWarning, Kind: diag.InvalidTestNaming,
			Message:    "test name does not match \"<category>: <subject>: <description>\"",
			Suggestion: "\"<category>: <subject>: <description>\"",
		}}
	case !cfg.AllowedCategories[parsed.category]:
		return []diag.Issue{{
			FilePath: filePath, Line: line, Column: 1,
			Severity: diag.SeverityWarning, Kind: diag.TestOutsideAllowedCategories,
			Message: "test category \"" + parsed.category + "\" is not in the configured allowed categories",
		}}
	default:
		return nil
	}
}

// hasPublicFunction scans the entire file (not just a prefix) for a "pub fn"
// declaration, honouring the Source Context's classification so matches
// inside comments or strings don't count.
func hasPublicFunction(ctx *source.Context) bool {
	text := ctx.CodeOnly(0, ctx.File().Len())

	return publicFnRe.Match(text)
}

// CategoryBreakdown returns the number of well-formed tests declared under
// each category name. Malformed names (missing or unrecognized category)
// are not counted; the returned map is a fresh value owned by the caller.
func CategoryBreakdown(tree *scope.Tree) map[string]uint {
	breakdown := make(map[string]uint)

	for _, id := range tree.ScopesOfKind(scope.Test) {
		name, ok := tree.Scope(id).Name().Get()
		if !ok {
			continue
		}

		parsed := parseName(name)
		if !parsed.wellFormed {
			continue
		}

		breakdown[parsed.category]++
	}

	return breakdown
}
