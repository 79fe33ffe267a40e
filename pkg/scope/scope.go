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

import "github.com/openzig/ziglint/pkg/util/option"

// Id is a dense index into a Tree's scope arena. Using an index instead of a
// pointer (mirroring the teacher's BindingId / index-into-bindings-array
// design in pkg/corset/compiler/scope.go) removes parent/child/arena-link
// cycles from the type graph entirely and makes the tree trivially
// cloneable and safe to share by value across goroutines.
type Id int

// NoParent is the sentinel used internally; callers use Scope.Parent, which
// returns an option.Option[Id].
const NoParent Id = -1

// Scope is one lexical region of source text.
type Scope struct {
	kind           Kind
	parent         Id // NoParent for the root
	children       []Id
	startOffset    int
	endOffset      int
	startLine      int
	endLine        int
	name           option.Option[string]
	returnTypeText option.Option[string]
	depth          uint32
	variables      []int // indices into Tree.variables
}

func (s *Scope) Kind() Kind    { return s.kind }
func (s *Scope) Depth() uint32 { return s.depth }

// Parent returns this scope's enclosing scope, or None for the root.
func (s *Scope) Parent() option.Option[Id] {
	if s.parent == NoParent {
		return option.None[Id]()
	}

	return option.Some(s.parent)
}

func (s *Scope) Children() []Id { return s.children }

func (s *Scope) Span() (start, end int) { return s.startOffset, s.endOffset }

func (s *Scope) Lines() (start, end int) { return s.startLine, s.endLine }

// Name returns the scope's function/test/type name, if any.
func (s *Scope) Name() option.Option[string] { return s.name }

// ReturnTypeText returns a function scope's declared return-type text.
func (s *Scope) ReturnTypeText() option.Option[string] { return s.returnTypeText }

// Tree is the read-only, fully-built result of the Scope Tracker: a flat
// arena of Scope records plus the Variable records declared within them.
// Once Build returns, a Tree is never mutated.
type Tree struct {
	scopes    []Scope
	variables []Variable
}

// Root returns the file-level scope, which always exists and always has id 0.
func (t *Tree) Root() Id { return 0 }

// Scope returns the record for a given Id. Panics on an out-of-range id,
// which would indicate an internal tracker bug (ids are only ever handed
// out by the tracker itself).
func (t *Tree) Scope(id Id) *Scope { return &t.scopes[id] }

// Stats summarizes the shape of the built tree.
type Stats struct {
	TotalScopes   int
	MaxDepth      uint32
	VariableCount int
}

// Stats computes summary statistics over the tree.
func (t *Tree) Stats() Stats {
	var maxDepth uint32

	for i := range t.scopes {
		if t.scopes[i].depth > maxDepth {
			maxDepth = t.scopes[i].depth
		}
	}

	return Stats{TotalScopes: len(t.scopes), MaxDepth: maxDepth, VariableCount: len(t.variables)}
}

// ScopesOfKind returns every scope of the given kind, in declaration order.
func (t *Tree) ScopesOfKind(kind Kind) []Id {
	var out []Id

	for i := range t.scopes {
		if t.scopes[i].kind == kind {
			out = append(out, Id(i))
		}
	}

	return out
}

// EnclosingScopeAt returns the innermost scope containing the given byte
// offset.
func (t *Tree) EnclosingScopeAt(offset int) Id {
	best := t.Root()

	for i := range t.scopes {
		s := &t.scopes[i]
		if s.startOffset <= offset && offset < s.endOffset && s.depth >= t.scopes[best].depth {
			best = Id(i)
		}
	}

	return best
}

// VariablesVisibleAt returns every variable visible at the given offset:
// those declared in the enclosing scope and all of its ancestors, innermost
// first.
func (t *Tree) VariablesVisibleAt(offset int) []*Variable {
	var out []*Variable

	id := t.EnclosingScopeAt(offset)

	for {
		s := &t.scopes[id]
		for _, vi := range s.variables {
			out = append(out, &t.variables[vi])
		}

		parent, ok := s.Parent().Get()
		if !ok {
			break
		}

		id = parent
	}

	return out
}

// lookup finds a variable named name visible from scope id, searching
// outward through ancestors; returns the nearest (innermost) declaration.
func (t *Tree) lookup(id Id, name string) *Variable {
	for {
		s := &t.scopes[id]

		for i := len(s.variables) - 1; i >= 0; i-- {
			v := &t.variables[s.variables[i]]
			if v.Name == name {
				return v
			}
		}

		parent, ok := s.Parent().Get()
		if !ok {
			return nil
		}

		id = parent
	}
}

// AllocatorOriginOf resolves name's allocator origin as visible at offset.
func (t *Tree) AllocatorOriginOf(name string, offset int) option.Option[AllocatorOrigin] {
	id := t.EnclosingScopeAt(offset)

	return originOf(t.lookup(id, name))
}

// VariablesOf returns the variables declared directly within scope id (not
// its descendants).
func (t *Tree) VariablesOf(id Id) []*Variable {
	s := &t.scopes[id]
	out := make([]*Variable, len(s.variables))

	for i, vi := range s.variables {
		out[i] = &t.variables[vi]
	}

	return out
}

// Variables returns every variable record in the tree, in declaration order.
// Callers that need to scan every declaration for allocation sites (the
// Memory Analyzer) use this instead of walking the scope tree themselves.
func (t *Tree) Variables() []*Variable {
	out := make([]*Variable, len(t.variables))
	for i := range t.variables {
		out[i] = &t.variables[i]
	}

	return out
}

// AllocatorOriginInScope resolves name's allocator origin as visible from
// scope id directly, without needing a byte offset. Used by callers that
// already know a variable's declaring scope (e.g. an allocation site built
// from a Variable record) rather than a source position.
func (t *Tree) AllocatorOriginInScope(id Id, name string) option.Option[AllocatorOrigin] {
	return originOf(t.lookup(id, name))
}
