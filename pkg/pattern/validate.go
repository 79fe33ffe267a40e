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
package pattern

import (
	"fmt"

	"github.com/openzig/ziglint/pkg/diag"
)

// spec is the common shape shared by Allocator and Ownership, used so
// validation logic is written once and reused by both builders.
type spec struct {
	name          string
	patternText   string
	isRegex       bool
	caseSensitive bool
}

// BuildAllocatorMatcher merges user-supplied allocator patterns with the
// built-in defaults (unless disabled), validates the merged set per spec
// §4.2, and compiles it into a Matcher. Validation failures are returned as
// a Go error (the caller surfaces this as a configuration_error and aborts
// the analysis call, per spec §4.7); non-fatal overlaps are returned as
// pattern_validation_warning Issues alongside the matcher.
func BuildAllocatorMatcher(
	user []Allocator,
	useDefaults bool,
	disabledDefaults []string,
) (*Matcher, []diag.Issue, error) {
	defaults := DefaultAllocatorPatterns()

	if !useDefaults {
		defaults = nil
	} else if len(disabledDefaults) > 0 {
		disabled := toSet(disabledDefaults)
		filtered := defaults[:0:0]

		for _, d := range defaults {
			if !disabled[d.Name] {
				filtered = append(filtered, d)
			}
		}

		defaults = filtered
	}

	userSpecs := make([]spec, len(user))
	for i, p := range user {
		userSpecs[i] = spec{p.Name, p.PatternText, p.IsRegex, p.CaseSensitive}
	}

	defaultSpecs := make([]spec, len(defaults))
	for i, p := range defaults {
		defaultSpecs[i] = spec{p.Name, p.PatternText, p.IsRegex, p.CaseSensitive}
	}

	merged, warnings, err := validateMerge(userSpecs, defaultSpecs)
	if err != nil {
		return nil, nil, err
	}

	m, err := compileMatcher(merged)

	return m, warnings, err
}

// OwnershipMatcher holds the two independently-compiled pattern sets an
// Ownership pattern can target: one matched against a function's name, the
// other against its return-type text. Kept as two Matchers rather than one
// (spec §4.4's two ownership-transfer-by-pattern rules are distinct
// conditions) so a return-type-only pattern like "[]u8" never accidentally
// matches a function name.
type OwnershipMatcher struct {
	byName       *Matcher
	byReturnType *Matcher
}

// ClassifyFunctionName tries the name-targeted patterns against fnName.
func (m *OwnershipMatcher) ClassifyFunctionName(fnName string) (string, bool) {
	if m == nil || m.byName == nil {
		return "", false
	}

	return m.byName.Classify(fnName)
}

// ClassifyReturnType tries the return-type-targeted patterns against text.
func (m *OwnershipMatcher) ClassifyReturnType(text string) (string, bool) {
	if m == nil || m.byReturnType == nil {
		return "", false
	}

	return m.byReturnType.Classify(text)
}

// BuildOwnershipMatcher is BuildAllocatorMatcher's counterpart for ownership
// patterns; ownership has no per-name disable list in spec §4.4, only a
// use-defaults toggle. User patterns are validated together (duplicate names
// and length-1 warnings are checked across both match kinds at once, since
// the name namespace is shared), then partitioned into two Matchers by
// MatchKind so a pattern can never cross-apply to the field it wasn't
// written for.
func BuildOwnershipMatcher(user []Ownership, useDefaults bool) (*OwnershipMatcher, []diag.Issue, error) {
	defaults := DefaultOwnershipPatterns()

	if !useDefaults {
		defaults = nil
	}

	all := make([]Ownership, 0, len(user)+len(defaults))
	all = append(all, user...)
	all = append(all, defaults...)

	userSpecs := make([]spec, len(user))
	for i, p := range user {
		userSpecs[i] = spec{p.Name, p.PatternText, p.IsRegex, p.CaseSensitive}
	}

	defaultSpecs := make([]spec, len(defaults))
	for i, p := range defaults {
		defaultSpecs[i] = spec{p.Name, p.PatternText, p.IsRegex, p.CaseSensitive}
	}

	merged, warnings, err := validateMerge(userSpecs, defaultSpecs)
	if err != nil {
		return nil, nil, err
	}

	kindByName := make(map[string]OwnershipMatchKind, len(all))
	for _, p := range all {
		if _, ok := kindByName[p.Name]; !ok {
			kindByName[p.Name] = p.MatchKind
		}
	}

	var byNameSpecs, byReturnTypeSpecs []spec

	for _, s := range merged {
		if kindByName[s.name] == MatchReturnType {
			byReturnTypeSpecs = append(byReturnTypeSpecs, s)
		} else {
			byNameSpecs = append(byNameSpecs, s)
		}
	}

	byName, err := compileMatcher(byNameSpecs)
	if err != nil {
		return nil, nil, err
	}

	byReturnType, err := compileMatcher(byReturnTypeSpecs)
	if err != nil {
		return nil, nil, err
	}

	return &OwnershipMatcher{byName: byName, byReturnType: byReturnType}, warnings, nil
}

// validateMerge validates user patterns (tried first) followed by defaults,
// per spec §4.2: empty name/pattern is an error, duplicate names across the
// merged set is an error, length-1 patterns are a warning, and a user
// pattern whose name shadows a default's is a pattern_validation_warning
// (the user's instance wins by ordering, so it is kept and the default's
// dropped).
func validateMerge(user, defaults []spec) (merged []spec, warnings []diag.Issue, err error) {
	seen := make(map[string]bool, len(user)+len(defaults))

	for _, p := range user {
		if e := validateOne(p); e != nil {
			return nil, nil, e
		}

		if seen[p.name] {
			return nil, nil, fmt.Errorf("duplicate pattern name %q", p.name)
		}

		seen[p.name] = true
		merged = append(merged, p)

		if len(p.patternText) == 1 {
			warnings = append(warnings, patternWarning(p.name, "pattern is a single character and may over-match"))
		}
	}

	for _, p := range defaults {
		if e := validateOne(p); e != nil {
			return nil, nil, e
		}

		if seen[p.name] {
			warnings = append(warnings, patternWarning(p.name,
				"user pattern overrides built-in default of the same name"))

			continue
		}

		seen[p.name] = true
		merged = append(merged, p)

		if len(p.patternText) == 1 {
			warnings = append(warnings, patternWarning(p.name, "pattern is a single character and may over-match"))
		}
	}

	return merged, warnings, nil
}

func validateOne(p spec) error {
	if p.name == "" {
		return fmt.Errorf("pattern name must not be empty")
	}

	if p.patternText == "" {
		return fmt.Errorf("pattern %q: pattern text must not be empty", p.name)
	}

	return nil
}

func compileMatcher(specs []spec) (*Matcher, error) {
	m := &Matcher{entries: make([]entry, 0, len(specs))}

	for _, s := range specs {
		fn, err := compile(s.patternText, s.isRegex, s.caseSensitive)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", s.name, err)
		}

		m.entries = append(m.entries, entry{s.name, fn})
	}

	return m, nil
}

func patternWarning(name, msg string) diag.Issue {
	return diag.Issue{
		Severity: diag.SeverityWarning,
		Kind:     diag.PatternValidationWarning,
		Message:  fmt.Sprintf("pattern %q: %s", name, msg),
	}
}

func toSet(names []string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}

	return s
}
