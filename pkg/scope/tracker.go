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

import (
	"strings"

	"github.com/openzig/ziglint/pkg/diag"
	"github.com/openzig/ziglint/pkg/pattern"
	"github.com/openzig/ziglint/pkg/source"
	"github.com/openzig/ziglint/pkg/util/option"
)

// DefaultMaxDepth is the scope-nesting depth at which the tracker stops
// opening further scopes and reports a parse_failure, per spec §4.3.
const DefaultMaxDepth = 64

// Config parameterises the Scope Tracker.
type Config struct {
	// MaxDepth bounds scope nesting; zero means DefaultMaxDepth.
	MaxDepth uint32
	// AllocatorMatcher classifies an initializer expression's text into a
	// named allocator. Required; construct one with pattern.BuildAllocatorMatcher.
	AllocatorMatcher *pattern.Matcher
	// ParameterAllocatorTypeNeedles are case-insensitive substrings of a
	// parameter's declared type that mark it as an allocator parameter
	// (spec §4.3: "a parameter whose type text matches the allocator-type
	// pattern").
	ParameterAllocatorTypeNeedles []string
}

// DefaultParameterAllocatorTypeNeedles is the built-in set of substrings
// recognized in a parameter's type text as denoting an allocator.
func DefaultParameterAllocatorTypeNeedles() []string {
	return []string{"Allocator", "Alloc"}
}

func (c Config) maxDepth() uint32 {
	if c.MaxDepth == 0 {
		return DefaultMaxDepth
	}

	return c.MaxDepth
}

// frame is one entry of the builder's open-scope stack. A suppressed frame
// exists only to keep brace matching correct once the depth limit has been
// hit; it has no corresponding Scope record.
type frame struct {
	id         Id
	suppressed bool
}

// Build scans ctx once and returns the resulting Tree, plus any
// parse_failure diagnostics encountered along the way (unterminated
// constructs surfaced by the Source Context, and depth-limit overflows).
func Build(ctx *source.Context, cfg Config) (*Tree, []diag.Issue) {
	b := &builder{
		ctx: ctx,
		cur: newCursor(ctx),
		cfg: cfg,
		tree: &Tree{
			scopes: []Scope{{kind: File, parent: NoParent, startOffset: 0, startLine: 1, depth: 0}},
		},
	}
	b.stack = []frame{{id: 0}}
	b.issues = append(b.issues, ctx.Issues()...)
	b.run()

	return b.tree, b.issues
}

type builder struct {
	ctx         *source.Context
	cur         *cursor
	cfg         Config
	tree        *Tree
	stack       []frame
	issues      []diag.Issue
	depthWarned bool
}

func (b *builder) run() {
	data := b.cur.data

	for {
		b.cur.skipNonCode()

		if b.cur.eof() {
			break
		}

		ch := b.cur.byteAt()

		switch {
		case isIdentStart(ch):
			ident := b.cur.readIdent()
			b.dispatchIdent(ident)
		case ch == '{':
			start := b.cur.pos
			b.cur.pos++
			b.pushScope(Block, option.None[string](), start)
		case ch == '}':
			b.cur.pos++
			b.popScope(b.cur.pos)
		case ch == '=' && b.cur.pos+1 < len(data) && data[b.cur.pos+1] == '>':
			b.cur.pos += 2
			b.cur.skipSpaceAndComments()

			if !b.cur.eof() && b.cur.byteAt() == '{' {
				start := b.cur.pos
				b.cur.pos++
				b.pushScope(SwitchCase, option.None[string](), start)
			}
		default:
			b.cur.pos++
		}
	}
	// Close out anything still open at EOF (malformed/unterminated input):
	// every remaining frame is closed at EOF so the tree remains
	// well-formed, and each one that is not a suppressed (depth-limited)
	// frame is reported once as a parse_failure.
	for len(b.stack) > 1 {
		b.reportUnterminatedScope()
		b.popScope(len(data))
	}

	root := b.tree.Scope(b.tree.Root())
	root.endOffset = len(data)
	root.endLine, _ = b.ctx.File().Position(len(data))
}

func (b *builder) dispatchIdent(ident string) {
	switch ident {
	case "fn":
		b.parseFunction()
	case "test":
		b.parseTest()
	case "struct", "enum", "union":
		b.parseBareTypeScope(ident)
	case "error":
		b.parseBareErrorSet()
	case "if":
		b.parseConditionThenBrace(If)
	case "while":
		b.parseConditionThenBrace(While)
	case "for":
		b.parseConditionThenBrace(For)
	case "else":
		b.parseElse()
	case "switch":
		b.parseSwitch()
	case "const":
		b.parseDeclaration(LocalConst)
	case "var":
		b.parseDeclaration(LocalVar)
	}
}

// currentRealScope returns the nearest enclosing scope that actually has a
// Scope record (skipping any suppressed, depth-limited frames).
func (b *builder) currentRealScope() Id {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if !b.stack[i].suppressed {
			return b.stack[i].id
		}
	}

	return b.tree.Root()
}

// pushScope opens a new scope of the given kind starting at startOffset
// (the position of its opening brace, already consumed by the caller). If
// doing so would exceed the configured max depth, a suppressed frame is
// pushed instead (to keep brace matching correct) and NoParent is returned.
func (b *builder) pushScope(kind Kind, name option.Option[string], startOffset int) Id {
	parentID := b.currentRealScope()
	depth := b.tree.scopes[parentID].depth + 1

	if depth > b.cfg.maxDepth() {
		if !b.depthWarned {
			b.reportDepthLimit(startOffset)
			b.depthWarned = true
		}

		b.stack = append(b.stack, frame{suppressed: true})

		return NoParent
	}

	line, col := b.ctx.File().Position(startOffset)
	_ = col

	s := Scope{
		kind: kind, parent: parentID, startOffset: startOffset,
		startLine: line, depth: depth, name: name,
	}
	id := Id(len(b.tree.scopes))
	b.tree.scopes = append(b.tree.scopes, s)
	b.tree.scopes[parentID].children = append(b.tree.scopes[parentID].children, id)
	b.stack = append(b.stack, frame{id: id})

	return id
}

// popScope closes the innermost open frame at endOffset (one past the
// closing brace already consumed by the caller).
func (b *builder) popScope(endOffset int) {
	if len(b.stack) == 0 {
		return
	}

	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	if top.suppressed {
		return
	}

	s := b.tree.Scope(top.id)
	s.endOffset = endOffset
	s.endLine, _ = b.ctx.File().Position(endOffset)
}

func (b *builder) addVariable(v Variable) {
	idx := len(b.tree.variables)
	b.tree.variables = append(b.tree.variables, v)
	b.tree.scopes[v.DeclaringScope].variables = append(b.tree.scopes[v.DeclaringScope].variables, idx)
}

func (b *builder) reportDepthLimit(offset int) {
	line, col := b.ctx.File().Position(offset)
	b.issues = append(b.issues, diag.Issue{
		FilePath: b.ctx.File().Path(), Line: line, Column: col,
		Severity: diag.SeverityWarning, Kind: diag.ParseFailure,
		Message: "maximum scope nesting depth exceeded; further nested scopes are not analyzed",
	})
}

func (b *builder) reportUnterminatedScope() {
	top := b.stack[len(b.stack)-1]
	if top.suppressed {
		return
	}

	s := b.tree.Scope(top.id)
	b.issues = append(b.issues, diag.Issue{
		FilePath: b.ctx.File().Path(), Line: s.startLine, Column: 1,
		Severity: diag.SeverityWarning, Kind: diag.ParseFailure,
		Message: "unterminated " + s.kind.String() + " scope (missing closing brace)",
	})
}

// --- struct / enum / union / error_set -------------------------------------

func typeKindFor(ident string) Kind {
	switch ident {
	case "struct":
		return Struct
	case "enum":
		return Enum
	case "union":
		return Union
	default:
		return ErrorSet
	}
}

// parseBareTypeScope handles a struct/enum/union keyword encountered
// directly by the main scan loop (i.e. not as the right-hand side of a
// const/var declaration, so it has no name).
func (b *builder) parseBareTypeScope(ident string) {
	b.cur.skipSpaceAndComments()

	if !b.cur.eof() && b.cur.byteAt() == '(' {
		b.cur.skipBalanced('(', ')')
		b.cur.skipSpaceAndComments()
	}

	if !b.cur.eof() && b.cur.byteAt() == '{' {
		start := b.cur.pos
		b.cur.pos++
		b.pushScope(typeKindFor(ident), option.None[string](), start)
	}
}

func (b *builder) parseBareErrorSet() {
	b.cur.skipSpaceAndComments()

	if !b.cur.eof() && b.cur.byteAt() == '{' {
		start := b.cur.pos
		b.cur.pos++
		b.pushScope(ErrorSet, option.None[string](), start)
	}
}

// --- if / while / for / else / switch --------------------------------------

func (b *builder) parseConditionThenBrace(kind Kind) {
	b.cur.skipSpaceAndComments()

	if b.cur.eof() || b.cur.byteAt() != '(' {
		return
	}

	b.cur.skipBalanced('(', ')')

	for {
		b.cur.skipSpaceAndComments()

		if b.cur.eof() {
			return
		}

		switch b.cur.byteAt() {
		case '|':
			b.skipCapture()
		case ':':
			b.cur.pos++
			b.cur.skipSpaceAndComments()

			if !b.cur.eof() && b.cur.byteAt() == '(' {
				b.cur.skipBalanced('(', ')')
			}
		default:
			goto done
		}
	}

done:
	b.cur.skipSpaceAndComments()

	if !b.cur.eof() && b.cur.byteAt() == '{' {
		start := b.cur.pos
		b.cur.pos++
		b.pushScope(kind, option.None[string](), start)
	}
}

// skipCapture consumes a non-nesting "|name, name2|" payload-capture clause.
func (b *builder) skipCapture() {
	b.cur.pos++ // opening '|'

	for !b.cur.eof() && b.cur.byteAt() != '|' {
		b.cur.pos++
	}

	if !b.cur.eof() {
		b.cur.pos++ // closing '|'
	}
}

func (b *builder) parseElse() {
	b.cur.skipSpaceAndComments()

	if b.cur.peekIdent() == "if" {
		return // let the main loop's next iteration handle the nested "if"
	}

	if !b.cur.eof() && b.cur.byteAt() == '{' {
		start := b.cur.pos
		b.cur.pos++
		b.pushScope(Else, option.None[string](), start)
	}
}

func (b *builder) parseSwitch() {
	b.cur.skipSpaceAndComments()

	if b.cur.eof() || b.cur.byteAt() != '(' {
		return
	}

	b.cur.skipBalanced('(', ')')
	b.cur.skipSpaceAndComments()

	if !b.cur.eof() && b.cur.byteAt() == '{' {
		start := b.cur.pos
		b.cur.pos++
		b.pushScope(Block, option.None[string](), start)
	}
}

// --- test --------------------------------------------------------------

func (b *builder) parseTest() {
	b.cur.skipSpaceAndComments()

	name := ""

	if !b.cur.eof() && b.cur.byteAt() == '"' {
		start := b.cur.pos
		b.cur.pos++

		for !b.cur.eof() && b.ctx.KindAt(b.cur.pos) == source.StringLiteral {
			b.cur.pos++
		}

		name = strings.Trim(string(b.cur.data[start:b.cur.pos]), "\"")
	}

	b.cur.skipSpaceAndComments()

	if !b.cur.eof() && b.cur.byteAt() == '{' {
		start := b.cur.pos
		b.cur.pos++
		b.pushScope(Test, option.Some(name), start)
	}
}

// --- fn ------------------------------------------------------------------

func (b *builder) parseFunction() {
	b.cur.skipSpaceAndComments()

	var name string
	if !b.cur.eof() && isIdentStart(b.cur.byteAt()) {
		name = b.cur.readIdent()
	}

	b.cur.skipSpaceAndComments()

	var paramsText string
	if !b.cur.eof() && b.cur.byteAt() == '(' {
		paramsText, _ = b.cur.captureBalanced('(', ')')
	}

	b.cur.skipSpaceAndComments()

	for b.cur.peekIdent() == "callconv" {
		b.cur.readIdent()
		b.cur.skipSpaceAndComments()

		if !b.cur.eof() && b.cur.byteAt() == '(' {
			b.cur.skipBalanced('(', ')')
		}

		b.cur.skipSpaceAndComments()
	}

	retText, _, ok := b.cur.scanToTopLevel('{')
	if !ok {
		return
	}

	retText = strings.TrimSpace(retText)
	start := b.cur.pos
	b.cur.pos++ // consume '{'

	var nameOpt option.Option[string]
	if name != "" {
		nameOpt = option.Some(name)
	}

	id := b.pushScope(Function, nameOpt, start)
	if id != NoParent {
		b.tree.scopes[id].returnTypeText = option.Some(retText)
	}

	declScope := id
	if id == NoParent {
		declScope = b.currentRealScope()
	}

	line, _ := b.ctx.File().Position(start)

	for _, p := range splitTopLevelParams(paramsText) {
		origin := AllocatorOrigin{}
		if matchesAny(p.typ, b.parameterNeedles()) {
			origin = AllocatorOrigin{Kind: OriginParameter, ClassifiedName: pattern.ParameterAllocatorName}
		}

		b.addVariable(Variable{
			Name: p.name, DeclaringScope: declScope, DeclLine: line, DeclColumn: 1,
			Kind: Parameter, TypeText: p.typ, Origin: origin,
		})
	}
}

func (b *builder) parameterNeedles() []string {
	if len(b.cfg.ParameterAllocatorTypeNeedles) == 0 {
		return DefaultParameterAllocatorTypeNeedles()
	}

	return b.cfg.ParameterAllocatorTypeNeedles
}

func matchesAny(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}

	return false
}

type paramSpec struct{ name, typ string }

// splitTopLevelParams splits a captured "(...)" parameter list on top-level
// commas (respecting nested parens/brackets/braces in parameter types) and
// splits each chunk on its first top-level colon into name and type.
func splitTopLevelParams(text string) []paramSpec {
	var (
		out   []paramSpec
		depth int
		start int
	)

	flush := func(chunk string) {
		chunk = strings.TrimSpace(chunk)
		chunk = strings.TrimPrefix(chunk, "comptime ")
		chunk = strings.TrimPrefix(chunk, "noalias ")
		chunk = strings.TrimSpace(chunk)

		if chunk == "" || chunk == "..." {
			return
		}

		if ci := strings.IndexByte(chunk, ':'); ci >= 0 {
			out = append(out, paramSpec{
				name: strings.TrimSpace(chunk[:ci]),
				typ:  strings.TrimSpace(chunk[ci+1:]),
			})
		}
	}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				flush(text[start:i])
				start = i + 1
			}
		}
	}

	flush(text[start:])

	return out
}

// --- const / var declarations ---------------------------------------------

func (b *builder) parseDeclaration(kind VariableKind) {
	b.cur.skipSpaceAndComments()

	if b.cur.eof() || !isIdentStart(b.cur.byteAt()) {
		return
	}

	declLine, declCol := b.ctx.File().Position(b.cur.pos)
	name := b.cur.readIdent()
	b.cur.skipSpaceAndComments()

	var typeText string

	if !b.cur.eof() && b.cur.byteAt() == ':' {
		b.cur.pos++
		b.cur.skipSpaceAndComments()

		text, stopByte, ok := b.cur.scanToTopLevel('=', ';')
		typeText = strings.TrimSpace(text)

		if !ok || stopByte == ';' {
			b.addVariable(Variable{
				Name: name, DeclaringScope: b.currentRealScope(), DeclLine: declLine,
				DeclColumn: declCol, Kind: kind, TypeText: typeText,
			})

			return
		}

		b.cur.pos++ // consume '='
	} else if !b.cur.eof() && b.cur.byteAt() == '=' {
		b.cur.pos++
	} else {
		b.addVariable(Variable{
			Name: name, DeclaringScope: b.currentRealScope(), DeclLine: declLine, DeclColumn: declCol, Kind: kind,
		})

		return
	}

	b.cur.skipSpaceAndComments()

	if ident := b.cur.peekIdent(); ident == "struct" || ident == "enum" || ident == "union" || ident == "error" {
		save := b.cur.pos
		b.cur.readIdent()
		b.cur.skipSpaceAndComments()

		if !b.cur.eof() && b.cur.byteAt() == '(' {
			b.cur.skipBalanced('(', ')')
			b.cur.skipSpaceAndComments()
		}

		if !b.cur.eof() && b.cur.byteAt() == '{' {
			start := b.cur.pos
			b.cur.pos++
			b.pushScope(typeKindFor(ident), option.Some(name), start)
			b.addVariable(Variable{
				Name: name, DeclaringScope: b.currentRealScope(), DeclLine: declLine,
				DeclColumn: declCol, Kind: kind, TypeText: ident,
			})

			return
		}

		b.cur.pos = save
	}

	initText, _, _ := b.cur.scanToTopLevel(';')
	initText = strings.TrimSpace(initText)

	if !b.cur.eof() {
		b.cur.pos++ // consume ';'
	}

	scopeID := b.currentRealScope()
	origin := b.computeOrigin(scopeID, initText)

	b.addVariable(Variable{
		Name: name, DeclaringScope: scopeID, DeclLine: declLine, DeclColumn: declCol,
		Kind: kind, TypeText: typeText, Origin: origin, InitializerText: initText,
	})
}

// computeOrigin applies spec §4.3's origin-classification priority: arena
// derivation first, then named-instance pattern matching. (Parameter origin
// is assigned directly by parseFunction, since only parameters reach that
// rule.)
func (b *builder) computeOrigin(scopeID Id, initText string) AllocatorOrigin {
	if ident, ok := arenaDerivationIdent(initText); ok {
		if v := b.tree.lookup(scopeID, ident); v != nil && v.Origin.IsArena() {
			return AllocatorOrigin{Kind: OriginArena, ArenaScope: v.DeclaringScope, ArenaVariable: ident}
		}
	}

	if b.cfg.AllocatorMatcher != nil {
		if name, ok := b.cfg.AllocatorMatcher.Classify(initText); ok {
			return AllocatorOrigin{Kind: OriginNamedInstance, ClassifiedName: name}
		}
	}

	return AllocatorOrigin{}
}

// arenaDerivationIdent recognizes the "<ident>.allocator()" shape spec §4.3
// calls out explicitly.
func arenaDerivationIdent(initText string) (string, bool) {
	const suffix = ".allocator()"
	if !strings.HasSuffix(initText, suffix) {
		return "", false
	}

	ident := strings.TrimSuffix(initText, suffix)
	if ident == "" || !isIdentStart(ident[0]) {
		return "", false
	}

	for i := 0; i < len(ident); i++ {
		if !isIdentPart(ident[i]) {
			return "", false
		}
	}

	return ident, true
}
