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
package source

import "github.com/openzig/ziglint/pkg/diag"

// Kind classifies a single byte of source text. Every byte in a file belongs
// to exactly one Kind; the classification produced by Classify is a
// partition of [0, len(contents)).
type Kind uint8

const (
	// Code is ordinary source text available for pattern matching.
	Code Kind = iota
	// LineComment runs from "//" to (but excluding) the next newline.
	LineComment
	// BlockComment runs from "/*" to the matching "*/", with nesting.
	BlockComment
	// StringLiteral runs from an opening '"' to its closing, unescaped '"'.
	StringLiteral
	// CharLiteral runs from an opening '\'' to its closing, unescaped '\''.
	CharLiteral
)

// Context is the Source Context: a File plus a byte-indexed classification
// array that answers "is this offset code, or is it inside a string or
// comment?" in O(1). Built in a single forward pass over the file's bytes.
type Context struct {
	file   *File
	kinds  []Kind
	issues []diag.Issue
}

// NewContext builds a Context for the given file by scanning its contents
// once. Any unterminated string, char-literal or block comment produces a
// parse_failure diagnostic and is classified best-effort: a string or char
// literal to the end of its line, a block comment to the end of the file.
func NewContext(file *File) *Context {
	ctx := &Context{file: file, kinds: make([]Kind, len(file.contents))}
	ctx.scan()

	return ctx
}

// File returns the underlying source file.
func (c *Context) File() *File { return c.file }

// Issues returns any parse_failure diagnostics produced while classifying
// this file.
func (c *Context) Issues() []diag.Issue { return c.issues }

// IsInCode reports whether the byte at offset is classified as Code. Offsets
// outside the file report false.
func (c *Context) IsInCode(offset int) bool {
	if offset < 0 || offset >= len(c.kinds) {
		return false
	}

	return c.kinds[offset] == Code
}

// KindAt returns the classification of the byte at offset.
func (c *Context) KindAt(offset int) Kind {
	if offset < 0 || offset >= len(c.kinds) {
		return Code
	}

	return c.kinds[offset]
}

// CodeOnly returns the file's bytes in [start, end), with every byte not
// classified as Code replaced by a space. Offsets are preserved, so matches
// found in the returned slice can be mapped back to the original file's
// line/column via File.Position. This is the shared primitive callers use to
// run simple syntactic (regex/substring) scans over code while ignoring
// comments and string/char literal contents.
func (c *Context) CodeOnly(start, end int) []byte {
	if start < 0 {
		start = 0
	}

	if end > len(c.file.contents) {
		end = len(c.file.contents)
	}

	out := make([]byte, end-start)
	copy(out, c.file.contents[start:end])

	for i := start; i < end; i++ {
		if c.kinds[i] != Code {
			out[i-start] = ' '
		}
	}

	return out
}

// scan performs the single forward pass described in spec §4.1. It walks the
// contents byte by byte, switching among five classification sub-scanners,
// and fills in c.kinds for the span each sub-scanner consumed. Nested block
// comments are tracked with a depth counter, per spec's explicit design
// note; unterminated constructs emit a parse_failure and are classified to
// end of line (string/char literals) or EOF (block comments).
func (c *Context) scan() {
	data := c.file.contents
	i := 0

	for i < len(data) {
		switch {
		case startsWith(data, i, "\\\\"):
			end := consumeMultilineString(data, i)
			c.fill(i, end, StringLiteral)
			i = end
		case startsWith(data, i, "//"):
			end := consumeLineComment(data, i)
			c.fill(i, end, LineComment)
			i = end
		case startsWith(data, i, "/*"):
			end, terminated := consumeBlockComment(data, i)
			c.fill(i, end, BlockComment)

			if !terminated {
				c.reportUnterminated(i, "block comment")
			}

			i = end
		case data[i] == '"':
			end, terminated := consumeDelimited(data, i, '"')
			c.fill(i, end, StringLiteral)

			if !terminated {
				c.reportUnterminated(i, "string literal")
			}

			i = end
		case data[i] == '\'':
			end, terminated := consumeDelimited(data, i, '\'')
			c.fill(i, end, CharLiteral)

			if !terminated {
				c.reportUnterminated(i, "char literal")
			}

			i = end
		default:
			c.kinds[i] = Code
			i++
		}
	}
}

func (c *Context) fill(start, end int, kind Kind) {
	for j := start; j < end && j < len(c.kinds); j++ {
		c.kinds[j] = kind
	}
}

func (c *Context) reportUnterminated(offset int, what string) {
	line, col := c.file.Position(offset)
	c.issues = append(c.issues, diag.Issue{
		FilePath: c.file.Path(),
		Line:     line,
		Column:   col,
		Severity: diag.SeverityWarning,
		Kind:     diag.ParseFailure,
		Message:  "unterminated " + what,
	})
}

func startsWith(data []byte, i int, prefix string) bool {
	if i+len(prefix) > len(data) {
		return false
	}

	for k := 0; k < len(prefix); k++ {
		if data[i+k] != prefix[k] {
			return false
		}
	}

	return true
}

// consumeLineComment returns the offset one past the end of the comment
// (i.e. the position of the newline, or EOF).
func consumeLineComment(data []byte, start int) int {
	i := start

	for i < len(data) && data[i] != '\n' {
		i++
	}

	return i
}

// consumeMultilineString returns the offset one past the end of a Zig
// multi-line string literal: a run of one or more lines each starting
// (after optional leading whitespace) with "\\", per the source language's
// line-string grammar. Unlike a quoted string, backslashes inside the line
// are literal (no escape processing) and the construct is never
// "unterminated" — it simply ends at the first line that does not continue
// it, or at EOF.
func consumeMultilineString(data []byte, start int) int {
	i := start

	for {
		i += 2 // skip the leading "\\"

		for i < len(data) && data[i] != '\n' {
			i++
		}

		if i >= len(data) {
			return i
		}

		i++ // include the newline in the string's span

		j := i
		for j < len(data) && (data[j] == ' ' || data[j] == '\t') {
			j++
		}

		if !startsWith(data, j, "\\\\") {
			return i
		}

		i = j
	}
}

// consumeBlockComment returns the offset one past the closing "*/", tracking
// nesting depth, and whether the comment was properly terminated.
func consumeBlockComment(data []byte, start int) (end int, terminated bool) {
	depth := 1
	i := start + 2

	for i < len(data) {
		switch {
		case startsWith(data, i, "/*"):
			depth++
			i += 2
		case startsWith(data, i, "*/"):
			depth--
			i += 2

			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}

	return len(data), false
}

// consumeDelimited scans a string or char literal starting at an opening
// delimiter, honouring backslash escapes, and returns the offset one past
// the closing delimiter together with whether it was found before EOF or
// end-of-line. Multi-line string literals are not supported by the target
// language's quoted-string syntax, so an unescaped newline also terminates
// the scan as unterminated.
func consumeDelimited(data []byte, start int, delim byte) (end int, terminated bool) {
	i := start + 1

	for i < len(data) {
		switch data[i] {
		case '\\':
			i += 2 // skip the escaped character; tolerate trailing backslash at EOF
		case delim:
			return i + 1, true
		case '\n':
			return i, false
		default:
			i++
		}
	}

	return len(data), false
}
