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

// VariableKind distinguishes the three declaration shapes the tracker
// recognizes.
type VariableKind uint8

const (
	LocalConst VariableKind = iota
	LocalVar
	Parameter
)

func (k VariableKind) String() string {
	switch k {
	case LocalConst:
		return "local_const"
	case LocalVar:
		return "local_var"
	case Parameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// OriginKind is the closed set of ways a variable's allocator can have been
// obtained.
type OriginKind uint8

const (
	// OriginUnknown means no allocator-derivation pattern matched.
	OriginUnknown OriginKind = iota
	// OriginParameter means the variable is a function parameter whose type
	// matched the allocator-type pattern.
	OriginParameter
	// OriginArena means the variable was bound to "<arena>.allocator()"
	// where <arena> is itself an arena-allocator variable.
	OriginArena
	// OriginNamedInstance means the Pattern Matcher classified the
	// initializer's identifier as a known allocator by name.
	OriginNamedInstance
)

// AllocatorOrigin records how a variable's allocator was obtained, per spec
// §3's AllocatorOrigin sum type.
type AllocatorOrigin struct {
	Kind OriginKind
	// ArenaScope / ArenaVariable are set only when Kind == OriginArena:
	// the scope that declares the arena variable, and its name.
	ArenaScope    Id
	ArenaVariable string
	// ClassifiedName is set when Kind == OriginNamedInstance (or, for
	// convenience, also when an arena variable itself is classified, so
	// that "is this an arena?" can be answered without walking back to the
	// declaration) to the Pattern Matcher's canonical allocator name. When
	// Kind == OriginParameter it is pattern.ParameterAllocatorName.
	ClassifiedName string
}

// IsKnown reports whether this variable resolves to any allocator at all.
func (o AllocatorOrigin) IsKnown() bool {
	return o.Kind != OriginUnknown
}

// IsArena reports whether the classified allocator is an arena-style
// allocator, i.e. a valid target for a later "<ident>.allocator()"
// derivation.
func (o AllocatorOrigin) IsArena() bool {
	return o.ClassifiedName == "arena_allocator"
}

// Variable is a single declaration recorded in its declaring scope.
type Variable struct {
	Name           string
	DeclaringScope Id
	DeclLine       int
	DeclColumn     int
	Kind           VariableKind
	TypeText       string
	Origin         AllocatorOrigin
	// InitializerText is the raw source text of the initializer expression
	// (empty for parameters), retained so the Memory Analyzer can look for
	// allocation-call patterns without re-reading the file.
	InitializerText string
}

// originOf is a small helper used by the tracker to build an
// option.Option[AllocatorOrigin] only where the spec's API shape calls for
// one (AllocatorOriginOf returns a present-or-absent result distinct from
// OriginUnknown, since "no such variable" and "variable has unknown
// allocator" are different answers).
func originOf(v *Variable) option.Option[AllocatorOrigin] {
	if v == nil {
		return option.None[AllocatorOrigin]()
	}

	return option.Some(v.Origin)
}
