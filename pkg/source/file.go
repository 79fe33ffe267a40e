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

// Package source implements the Source Context: an immutable view of one
// file's bytes, a precomputed line-start index, and a single-pass
// classification of every byte into code / comment / string / char-literal.
// Every downstream rule consults a Context instead of re-scanning the raw
// text, which is what lets the Memory and Testing Analyzers avoid matching
// patterns inside comments or string literals.
package source

import "sort"

// Line describes a single physical line of a source file.
type Line struct {
	// Number of this line, counting from 1.
	Number int
	// Span of this line within the file's contents (excluding the
	// terminating newline, if any).
	Span Span
}

// File is an immutable view of one source file's bytes together with its
// file path. Constructed once per analysis call and never mutated.
type File struct {
	path       string
	contents   []byte
	lineStarts []int
}

// NewFile constructs a File from raw bytes and a label used for
// diagnostics (typically a file path, but callers analyzing a source string
// directly may pass any descriptive label).
func NewFile(path string, contents []byte) *File {
	f := &File{path: path, contents: contents}
	f.lineStarts = computeLineStarts(contents)

	return f
}

func computeLineStarts(contents []byte) []int {
	starts := []int{0}

	for i, b := range contents {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}

// Path returns the label this file was constructed with.
func (f *File) Path() string { return f.path }

// Contents returns the raw bytes of this file.
func (f *File) Contents() []byte { return f.contents }

// Len returns the number of bytes in this file.
func (f *File) Len() int { return len(f.contents) }

// Position converts a byte offset into a 1-based (line, column) pair. Columns
// are counted in bytes from the start of the line, 1-based. An offset beyond
// the end of the file clamps to the last line.
func (f *File) Position(offset int) (line, column int) {
	// Find the last line-start <= offset.
	i := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > offset
	})
	idx := i - 1
	if idx < 0 {
		idx = 0
	}

	return idx + 1, offset - f.lineStarts[idx] + 1
}

// SpanOfLine returns the byte span of the given 1-based line number,
// excluding its terminating newline. Returns false if the line does not
// exist.
func (f *File) SpanOfLine(number int) (Span, bool) {
	if number < 1 || number > len(f.lineStarts) {
		return Span{}, false
	}

	start := f.lineStarts[number-1]

	var end int
	if number < len(f.lineStarts) {
		end = f.lineStarts[number] - 1 // exclude '\n'
	} else {
		end = len(f.contents)
	}
	// Trim a trailing '\r' for CRLF inputs.
	if end > start && f.contents[end-1] == '\r' {
		end--
	}

	return Span{start, end}, true
}

// Line returns the text of the given 1-based line number.
func (f *File) Line(number int) (string, bool) {
	span, ok := f.SpanOfLine(number)
	if !ok {
		return "", false
	}

	return string(f.contents[span.start:span.end]), true
}

// LineCount returns the total number of lines in the file.
func (f *File) LineCount() int {
	return len(f.lineStarts)
}
