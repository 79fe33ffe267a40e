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
	"regexp"

	"github.com/openzig/ziglint/pkg/source"
)

// maskedText returns ctx's code-only bytes in [start, end); comments and
// string/char literal contents are blanked so the syntactic scans below
// don't trip over identifier mentions inside them. This is deliberately
// hand-rolled rather than expressed via a parser: the ownership-transfer and
// release checks are a conservative syntactic scan by design (false
// negatives are acceptable; see spec note on data-flow scope).
func maskedText(ctx *source.Context, start, end int) []byte {
	return ctx.CodeOnly(start, end)
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// span is a byte range within a masked text buffer.
type span struct{ start, end int }

// findStatements locates every occurrence of keyword as a standalone
// statement-introducing word in text (e.g. "defer", "errdefer", "return") and
// returns the span from the keyword to the end of its statement: the next
// top-level ';', or, for a brace-delimited statement body, the matching '}'.
func findStatements(text []byte, keyword string) []span {
	var out []span

	n := len(text)

	for i := 0; i+len(keyword) <= n; i++ {
		if !matchesKeywordAt(text, i, keyword) {
			continue
		}

		end := scanStatementEnd(text, i+len(keyword))
		out = append(out, span{i, end})
		i = end
	}

	return out
}

func matchesKeywordAt(text []byte, i int, keyword string) bool {
	end := i + len(keyword)
	if end > len(text) || string(text[i:end]) != keyword {
		return false
	}

	if i > 0 && isIdentPart(text[i-1]) {
		return false
	}

	if end < len(text) && isIdentPart(text[end]) {
		return false
	}

	return true
}

// scanStatementEnd scans from start (just after a statement keyword) to the
// end of that statement: the next depth-zero ';', or, if a depth-zero '{' is
// encountered first (a block-bodied defer/errdefer), the matching '}'.
func scanStatementEnd(text []byte, start int) int {
	depth := 0
	i := start

	for i < len(text) {
		switch text[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '{':
			if depth == 0 {
				return scanBraceBlock(text, i)
			}

			depth++
		case '}':
			depth--
		case ';':
			if depth == 0 {
				return i + 1
			}
		}

		i++
	}

	return len(text)
}

func scanBraceBlock(text []byte, openBrace int) int {
	depth := 1
	i := openBrace + 1

	for i < len(text) && depth > 0 {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}

		i++
	}

	return i
}

func identRegexp(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}

func mentionsIdent(text []byte, name string) bool {
	return identRegexp(name).Match(text)
}

// blank overwrites every byte in the given spans with a space, in place.
func blank(text []byte, spans []span) {
	for _, sp := range spans {
		for i := sp.start; i < sp.end && i < len(text); i++ {
			text[i] = ' '
		}
	}
}
