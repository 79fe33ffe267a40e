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
package source_test

import (
	"testing"

	"github.com/openzig/ziglint/pkg/source"
)

func TestFilePosition(t *testing.T) {
	f := source.NewFile("t.zig", []byte("abc\ndef\nghi"))

	cases := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{7, 2, 4},
		{8, 3, 1},
	}

	for _, c := range cases {
		line, col := f.Position(c.offset)
		if line != c.line || col != c.col {
			t.Errorf("Position(%d) = (%d,%d), want (%d,%d)", c.offset, line, col, c.line, c.col)
		}
	}

	if f.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", f.LineCount())
	}
}

func TestFileLineAndSpanOfLine(t *testing.T) {
	f := source.NewFile("t.zig", []byte("one\r\ntwo\nthree"))

	line, ok := f.Line(1)
	if !ok || line != "one" {
		t.Fatalf("Line(1) = %q, %v, want %q, true", line, ok, "one")
	}

	line, ok = f.Line(3)
	if !ok || line != "three" {
		t.Fatalf("Line(3) = %q, %v, want %q, true", line, ok, "three")
	}

	if _, ok := f.Line(4); ok {
		t.Fatalf("Line(4) = ok, want not-ok for out-of-range line")
	}
}

func TestSpanContains(t *testing.T) {
	outer := source.NewSpan(0, 10)
	inner := source.NewSpan(2, 8)
	disjoint := source.NewSpan(9, 12)

	if !outer.Contains(inner) {
		t.Errorf("expected outer to contain inner")
	}

	if outer.Contains(disjoint) {
		t.Errorf("expected outer to not contain disjoint span")
	}

	if inner.Length() != 6 {
		t.Errorf("Length() = %d, want 6", inner.Length())
	}
}

func TestSpanInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for start > end")
		}
	}()

	source.NewSpan(5, 2)
}

func TestClassifyPartitionsWholeFile(t *testing.T) {
	src := `const x = "a \"nested\" string"; // trailing comment
/* block
   comment */
const c = 'a';
`
	f := source.NewFile("t.zig", []byte(src))
	ctx := source.NewContext(f)

	if len(ctx.Issues()) != 0 {
		t.Fatalf("unexpected issues: %+v", ctx.Issues())
	}

	// Every byte must be classified; spot-check a few known regions.
	stringStart := indexOf(src, `"a`)
	if ctx.IsInCode(stringStart) {
		t.Errorf("expected offset %d (inside string) to not be code", stringStart)
	}

	commentStart := indexOf(src, "// trailing")
	if ctx.IsInCode(commentStart) {
		t.Errorf("expected offset %d (inside line comment) to not be code", commentStart)
	}

	blockStart := indexOf(src, "/* block")
	if ctx.IsInCode(blockStart) {
		t.Errorf("expected offset %d (inside block comment) to not be code", blockStart)
	}

	declStart := indexOf(src, "const x")
	if !ctx.IsInCode(declStart) {
		t.Errorf("expected offset %d (code) to be code", declStart)
	}
}

func TestClassifyNestedBlockComment(t *testing.T) {
	src := "/* outer /* inner */ still comment */ const x = 1;"
	f := source.NewFile("t.zig", []byte(src))
	ctx := source.NewContext(f)

	if len(ctx.Issues()) != 0 {
		t.Fatalf("unexpected issues: %+v", ctx.Issues())
	}

	declStart := indexOf(src, "const x")
	if !ctx.IsInCode(declStart) {
		t.Errorf("expected %q to be classified as code once nested comment closes", "const x")
	}
}

func TestClassifyMultilineString(t *testing.T) {
	src := "const s =" + "\n" +
		"    \\\\ a test \"category: subject: desc\" line" + "\n" +
		"    \\\\ another alloc-looking line" + "\n" +
		";" + "\n" +
		"const c = 1;"

	f := source.NewFile("t.zig", []byte(src))
	ctx := source.NewContext(f)

	if len(ctx.Issues()) != 0 {
		t.Fatalf("unexpected issues: %+v", ctx.Issues())
	}

	first := indexOf(src, `\\ a test`)
	if ctx.IsInCode(first) {
		t.Errorf("expected the first multi-line-string line to not be code")
	}

	second := indexOf(src, `\\ another alloc`)
	if ctx.IsInCode(second) {
		t.Errorf("expected the continuation multi-line-string line to not be code")
	}

	after := indexOf(src, "const c")
	if !ctx.IsInCode(after) {
		t.Errorf("expected code after the multi-line string to resume as code")
	}
}

func TestClassifyUnterminatedStringReportsParseFailure(t *testing.T) {
	src := "const x = \"unterminated"
	f := source.NewFile("t.zig", []byte(src))
	ctx := source.NewContext(f)

	if len(ctx.Issues()) != 1 {
		t.Fatalf("expected 1 parse_failure issue, got %d: %+v", len(ctx.Issues()), ctx.Issues())
	}

	before := indexOf(src, "const")
	if !ctx.IsInCode(before) {
		t.Errorf("expected code before the unterminated string to still be classified as code")
	}
}

func TestClassifyUnterminatedBlockComment(t *testing.T) {
	src := "const x = 1; /* never closes"
	f := source.NewFile("t.zig", []byte(src))
	ctx := source.NewContext(f)

	if len(ctx.Issues()) != 1 {
		t.Fatalf("expected 1 parse_failure issue, got %d", len(ctx.Issues()))
	}

	if ctx.Issues()[0].Kind.String() != "parse_failure" {
		t.Errorf("Kind = %v, want parse_failure", ctx.Issues()[0].Kind)
	}
}

func TestCodeOnlyMasksNonCodeBytes(t *testing.T) {
	src := `const s = "alloc";` + "\n" + `const a = try gpa.alloc(u8, 1);`
	f := source.NewFile("t.zig", []byte(src))
	ctx := source.NewContext(f)

	masked := ctx.CodeOnly(0, len(src))
	if len(masked) != len(src) {
		t.Fatalf("CodeOnly length = %d, want %d", len(masked), len(src))
	}

	// The word "alloc" inside the string literal must be masked out, while
	// the real allocation call on the second line must survive.
	maskedStr := string(masked)
	if indexOfCount(maskedStr, "alloc") != 1 {
		t.Errorf("expected exactly one surviving occurrence of %q in masked text, got %d: %q",
			"alloc", indexOfCount(maskedStr, "alloc"), maskedStr)
	}
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}

	return -1
}

func indexOfCount(s, substr string) int {
	count := 0

	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			count++
		}
	}

	return count
}
