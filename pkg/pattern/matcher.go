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
	"strings"

	"github.com/dlclark/regexp2"
)

// matchFunc reports whether a pattern matches the given text.
type matchFunc func(text string) bool

// entry is one compiled, orderable pattern: a name plus the compiled
// matchFunc that decides whether a candidate string matches it.
type entry struct {
	name  string
	match matchFunc
}

// Matcher holds an ordered, validated, immutable set of compiled patterns.
// Patterns are tried in construction order; the first match wins (spec
// §4.2's "first match wins" rule).
type Matcher struct {
	entries []entry
}

// Classify tries every pattern in order against text and returns the name of
// the first one that matches.
func (m *Matcher) Classify(text string) (string, bool) {
	for _, e := range m.entries {
		if e.match(text) {
			return e.name, true
		}
	}

	return "", false
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int { return len(m.entries) }

// compile turns one pattern's text into a matchFunc, honouring the
// substring-by-default / optional-regex / optional-case-folding semantics of
// spec §4.2.
func compile(patternText string, isRegex, caseSensitive bool) (matchFunc, error) {
	if isRegex {
		opts := regexp2.RegexOptions(0)
		if !caseSensitive {
			opts |= regexp2.IgnoreCase
		}

		re, err := regexp2.Compile(patternText, opts)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", patternText, err)
		}

		return func(text string) bool {
			m, err := re.FindStringMatch(text)
			return err == nil && m != nil
		}, nil
	}

	needle := patternText

	if caseSensitive {
		return func(text string) bool {
			return strings.Contains(text, needle)
		}, nil
	}

	folded := strings.ToLower(needle)

	return func(text string) bool {
		return strings.Contains(strings.ToLower(text), folded)
	}, nil
}
