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
package scope

import "github.com/openzig/ziglint/pkg/source"

// cursor is a tiny forward-only scanning helper over one file's code-only
// bytes. It is the hand-rolled equivalent of the teacher's generic
// Scanner[T]/Lexer[T] combinators in pkg/util/source/scanner.go: rather than
// parameterising over arbitrary token types, it is specialised to the one
// thing the Scope Tracker needs — walking code bytes while transparently
// skipping anything the Source Context classified as a comment or string.
type cursor struct {
	ctx  *source.Context
	data []byte
	pos  int
}

func newCursor(ctx *source.Context) *cursor {
	return &cursor{ctx: ctx, data: ctx.File().Contents(), pos: 0}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

// skipNonCode advances pos past any bytes not classified as Code (comments,
// strings, char literals), leaving pos at the next code byte or at EOF.
func (c *cursor) skipNonCode() {
	for c.pos < len(c.data) && !c.ctx.IsInCode(c.pos) {
		c.pos++
	}
}

// skipSpaceAndComments advances pos past whitespace and non-code bytes.
func (c *cursor) skipSpaceAndComments() {
	for c.pos < len(c.data) {
		if !c.ctx.IsInCode(c.pos) {
			c.pos++
			continue
		}

		if isSpace(c.data[c.pos]) {
			c.pos++
			continue
		}

		break
	}
}

func (c *cursor) eof() bool { return c.pos >= len(c.data) }

func (c *cursor) byteAt() byte { return c.data[c.pos] }

// readIdent reads an identifier starting at pos (caller must ensure pos is
// at an identifier-start byte) and advances past it.
func (c *cursor) readIdent() string {
	start := c.pos
	for c.pos < len(c.data) && isIdentPart(c.data[c.pos]) {
		c.pos++
	}

	return string(c.data[start:c.pos])
}

// peekIdent returns the identifier at pos without advancing, or "" if pos is
// not at an identifier-start byte.
func (c *cursor) peekIdent() string {
	if c.eof() || !isIdentStart(c.byteAt()) {
		return ""
	}

	save := c.pos
	id := c.readIdent()
	c.pos = save

	return id
}

// skipBalanced advances pos past a balanced run of open/close bytes starting
// at an open byte (e.g. '(' / ')'), honouring the Source Context's
// classification so that parens inside strings/comments don't confuse the
// depth count. Returns false if EOF was reached before the matching close.
func (c *cursor) skipBalanced(open, closeB byte) bool {
	if c.eof() || c.byteAt() != open {
		return false
	}

	depth := 0

	for c.pos < len(c.data) {
		if !c.ctx.IsInCode(c.pos) {
			c.pos++
			continue
		}

		switch c.data[c.pos] {
		case open:
			depth++
		case closeB:
			depth--
		}

		c.pos++

		if depth == 0 {
			return true
		}
	}

	return false
}

// captureBalanced behaves like skipBalanced but returns the text strictly
// between the opening and closing byte (exclusive of both).
func (c *cursor) captureBalanced(open, closeB byte) (string, bool) {
	start := c.pos + 1
	if !c.skipBalanced(open, closeB) {
		return string(c.data[start:c.pos]), false
	}

	return string(c.data[start : c.pos-1]), true
}

// scanToTopLevel advances pos until one of the given stop bytes is found at
// paren/bracket/brace depth zero relative to the starting position (code
// bytes only), and returns the text scanned (excluding the stop byte) along
// with which stop byte was hit. Returns ok=false if EOF was reached first.
func (c *cursor) scanToTopLevel(stops ...byte) (text string, stop byte, ok bool) {
	start := c.pos
	depth := 0

	for c.pos < len(c.data) {
		if !c.ctx.IsInCode(c.pos) {
			c.pos++
			continue
		}

		b := c.data[c.pos]

		if depth == 0 {
			for _, s := range stops {
				if b == s {
					return string(c.data[start:c.pos]), b, true
				}
			}
		}

		switch b {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}

		c.pos++
	}

	return string(c.data[start:c.pos]), 0, false
}
